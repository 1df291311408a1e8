package discord

// Friendly message constants for Discord responses
const (
	// Characters
	MsgCharacterNotFound = "❓ **Character Not Found**\nMaybe check the spelling?"
	MsgNoActiveCharacter = "👤 **No Active Character**\nRegister or switch to a character first."
	MsgAlreadyExists     = "📜 **Name Taken**\nYou already have a character by that name."

	// Resources
	MsgNotEnoughResources = "🎒 **Not Enough Resources**\nYou don't have enough of that."
	MsgUnknownResource    = "❓ **Unknown Resource**\nThat's not something the expedition tracks."

	// Shop
	MsgInsufficientFunds = "⚠️ **Not Enough Tokens!**\nYou can't afford this purchase."
	MsgOutOfStock        = "🏪 **Out of Stock**\nThe shop doesn't have that many left."

	MsgGenericError = "❌ Something went wrong."
)
