package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
	"github.com/lunareth/FarfinderBot_Go/internal/shop"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
	"github.com/lunareth/FarfinderBot_Go/internal/transfer"
)

var testAllow = ledger.NewAllowlist(domain.ResourceRations, domain.ResourceMaterial, domain.ResourceTokens)

func newServices(t *testing.T) (registry.Service, transfer.Service, shop.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory(store.Defaults{
		Pool: domain.Inventory{domain.ResourceRations: 50, domain.ResourceMaterial: 50},
		Catalog: []domain.ShopItem{
			{Name: "canteen", Price: 5, Stock: 10},
		},
	})
	poolAllow := ledger.NewAllowlist(domain.ResourceRations, domain.ResourceMaterial)
	return registry.NewService(st, nil, testAllow),
		transfer.NewService(st, testAllow, poolAllow),
		shop.NewService(st, testAllow),
		st
}

func seedNyx(t *testing.T, svc registry.Service) {
	t.Helper()
	_, err := svc.Register(context.Background(), "42", "Nyx", registry.Registration{
		Class: "scout", Species: "tiefling", Background: "smuggler",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(context.Background(), "42", "Nyx"))
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleRegisterCharacter(t *testing.T) {
	regSvc, _, _, _ := newServices(t)

	rec := postJSON(t, HandleRegisterCharacter(regSvc), RegisterCharacterRequest{
		UserID: "42", Name: "Nyx", Class: "scout", Species: "tiefling", Background: "smuggler",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var profile registry.CharacterProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.Equal(t, "Nyx", profile.Name)
	assert.Equal(t, 1, profile.Character.Level)
}

func TestHandleRegisterCharacter_DuplicateIsConflict(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleRegisterCharacter(regSvc), RegisterCharacterRequest{
		UserID: "42", Name: "Nyx", Class: "bard", Species: "human", Background: "noble",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, KindConflict, resp.Kind)
}

func TestHandleRegisterCharacter_MissingFields(t *testing.T) {
	regSvc, _, _, _ := newServices(t)

	rec := postJSON(t, HandleRegisterCharacter(regSvc), RegisterCharacterRequest{
		UserID: "42", Name: "Nyx",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRegisterCharacter_BadBody(t *testing.T) {
	regSvc, _, _, _ := newServices(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleRegisterCharacter(regSvc)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSwitchCharacter_NotFound(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleSwitchCharacter(regSvc), SwitchCharacterRequest{
		UserID: "42", Name: "Brill",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCharacterProfile(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	req := httptest.NewRequest(http.MethodGet, "/?user_id=42", nil)
	rec := httptest.NewRecorder()
	HandleCharacterProfile(regSvc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var profile registry.CharacterProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.Equal(t, "Nyx", profile.Name)
}

func TestHandleCharacterProfile_MissingUserID(t *testing.T) {
	regSvc, _, _, _ := newServices(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleCharacterProfile(regSvc)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCharacterProfile_NoActiveCharacter(t *testing.T) {
	regSvc, _, _, _ := newServices(t)

	req := httptest.NewRequest(http.MethodGet, "/?user_id=99", nil)
	rec := httptest.NewRecorder()
	HandleCharacterProfile(regSvc)(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSetStatus_InsufficientRations(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleSetStatus(regSvc), SetStatusRequest{
		UserID: "42", Status: "resting",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, KindInsufficient, resp.Kind)
}

func TestHandleSetStatus_UnknownStatus(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleSetStatus(regSvc), SetStatusRequest{
		UserID: "42", Status: "sleepwalking",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAdjustInventory(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleAdjustInventory(regSvc), AdjustInventoryRequest{
		UserID: "42", Action: "add", Resource: "rations", Amount: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result registry.AdjustResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 5, result.Quantity)
}

func TestHandleAdjustInventory_UnknownResource(t *testing.T) {
	regSvc, _, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleAdjustInventory(regSvc), AdjustInventoryRequest{
		UserID: "42", Action: "add", Resource: "waterskins", Amount: 5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTake(t *testing.T) {
	regSvc, transferSvc, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleTake(transferSvc), TransferRequest{
		UserID: "42", Resource: "rations", Amount: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.Transfer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 10, result.CharacterAfter)
	assert.Equal(t, 40, result.PoolAfter)
}

func TestHandleDeposit_Overdraft(t *testing.T) {
	regSvc, transferSvc, _, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleDeposit(transferSvc), TransferRequest{
		UserID: "42", Resource: "rations", Amount: 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleGetPool(t *testing.T) {
	_, transferSvc, _, _ := newServices(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetPool(transferSvc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PoolResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 50, resp.Pool.Get("rations"))
}

func TestHandleShopBuy_InvalidIndex(t *testing.T) {
	regSvc, _, shopSvc, _ := newServices(t)
	seedNyx(t, regSvc)

	rec := postJSON(t, HandleShopBuy(shopSvc), BuyRequest{
		UserID: "42", Index: 9, Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleShopBuy(t *testing.T) {
	regSvc, _, shopSvc, _ := newServices(t)
	seedNyx(t, regSvc)
	_, err := regSvc.AdjustInventory(context.Background(), "42", registry.ActionAdd, domain.ResourceTokens, 12)
	require.NoError(t, err)

	rec := postJSON(t, HandleShopBuy(shopSvc), BuyRequest{
		UserID: "42", Index: 1, Quantity: 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var receipt shop.Receipt
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&receipt))
	assert.Equal(t, 2, receipt.TokensLeft)
	assert.Equal(t, 8, receipt.StockLeft)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return context.DeadlineExceeded }

func TestHandleReadyz_Unavailable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	HandleReadyz(failingPinger{})(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRespondError_PersistenceHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, domain.ErrPersistence)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pgx")
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, KindInternal, resp.Kind)
}
