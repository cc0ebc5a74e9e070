package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testProject = "sk-organic-farms"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return Router(NewBackend(testProject, SeedCatalog()), nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownProjectRejected(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/other-shop/carts", `{"currency":"INR"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/"+testProject+"/carts", `{"currency":"INR"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.LineItems)

	add := `{"actions":[{"action":"addLineItem","variantId":"country-tomato-500g","quantity":2}]}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/"+created.ID, add)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.LineItems, 1)
	require.Equal(t, 2, cart.LineItems[0].Quantity)
	require.Equal(t, int64(3000), cart.LineItems[0].Price.CentAmount)
	require.Equal(t, int64(6000), cart.TotalPrice.CentAmount)
	require.Equal(t, 2, cart.TotalLineItemQuantity)

	// Adding the same variant merges into the existing line.
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/"+created.ID, add)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.LineItems, 1)
	require.Equal(t, 4, cart.LineItems[0].Quantity)

	lineID := cart.LineItems[0].ID
	change := `{"actions":[{"action":"changeLineItemQuantity","lineItemId":"` + lineID + `","quantity":1}]}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/"+created.ID, change)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Equal(t, 1, cart.TotalLineItemQuantity)
	require.Equal(t, int64(3000), cart.TotalPrice.CentAmount)

	remove := `{"actions":[{"action":"removeLineItem","lineItemId":"` + lineID + `"}]}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/"+created.ID, remove)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Empty(t, cart.LineItems)
	require.Zero(t, cart.TotalPrice.CentAmount)
}

func TestUpdateUnknownCart(t *testing.T) {
	router := testRouter(t)
	body := `{"actions":[{"action":"addLineItem","variantId":"okra-250g","quantity":1}]}`
	rec := doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/missing", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddUnknownVariant(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/"+testProject+"/carts", `{"currency":"INR"}`)
	var created cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	body := `{"actions":[{"action":"addLineItem","variantId":"no-such-variant","quantity":1}]}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/carts/"+created.ID, body)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupTokenMeFlow(t *testing.T) {
	router := testRouter(t)

	signup := `{"email":"priya@example.com","password":"greenfield9","firstName":"Priya","lastName":"Raman"}`
	rec := doJSON(t, router, http.MethodPost, "/"+testProject+"/me/signup", signup)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate email conflicts.
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/me/signup", signup)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Short password is rejected before any account is created.
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/me/signup",
		`{"email":"short@example.com","password":"tiny"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	form := "grant_type=password&username=priya%40example.com&password=greenfield9&scope=manage_project:" + testProject
	req := httptest.NewRequest(http.MethodPost, "/oauth/"+testProject+"/customers/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokenRec := httptest.NewRecorder()
	router.ServeHTTP(tokenRec, req)
	require.Equal(t, http.StatusOK, tokenRec.Code)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(tokenRec.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)

	meReq := httptest.NewRequest(http.MethodGet, "/"+testProject+"/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, meReq)
	require.Equal(t, http.StatusOK, meRec.Code)
	require.Contains(t, meRec.Body.String(), `"email":"priya@example.com"`)
}

func TestTokenInvalidCredentials(t *testing.T) {
	router := testRouter(t)
	form := "grant_type=password&username=nobody%40example.com&password=wrongpass&scope=manage_project:" + testProject
	req := httptest.NewRequest(http.MethodPost, "/oauth/"+testProject+"/customers/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithoutToken(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/"+testProject+"/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/"+testProject+"/collections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"key":"greens"`)

	rec = doJSON(t, router, http.MethodGet, "/"+testProject+"/products?collection=greens", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Moringa Greens")
	require.NotContains(t, rec.Body.String(), "Country Tomato")

	rec = doJSON(t, router, http.MethodGet, "/"+testProject+"/products/country-tomato", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"key":"country-tomato"`)

	rec = doJSON(t, router, http.MethodGet, "/"+testProject+"/products/no-such-product", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentAuthorizeAndDecline(t *testing.T) {
	router := testRouter(t)

	ok := `{"cartId":"cart-1","amountCents":10000,"currency":"INR","card":{"number":"4242424242424242","expMonth":12,"expYear":2030,"cvv":"123"}}`
	rec := doJSON(t, router, http.MethodPost, "/"+testProject+"/payments", ok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"authorized"`)

	declined := `{"cartId":"cart-1","amountCents":10000,"currency":"INR","card":{"number":"4242424242420000","expMonth":12,"expYear":2030,"cvv":"123"}}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/payments", declined)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	require.Contains(t, rec.Body.String(), "card_declined")

	zero := `{"cartId":"cart-1","amountCents":0,"currency":"INR","card":{"number":"4242424242424242","expMonth":12,"expYear":2030,"cvv":"123"}}`
	rec = doJSON(t, router, http.MethodPost, "/"+testProject+"/payments", zero)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
