package devserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

func login(t *testing.T, s *Server) string {
	t.Helper()
	body := bytes.NewBufferString(`{"email":"admin@backoffice.dev","password":"admin123"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out models.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	s := New("test-secret")
	body := bytes.NewBufferString(`{"email":"admin@backoffice.dev","password":"admin123"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out models.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin@backoffice.dev", out.User.Email)
	assert.Equal(t, models.RoleAdmin, out.User.Role)
	assert.Equal(t, "Login successful", out.Message)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := New("test-secret")
	body := bytes.NewBufferString(`{"email":"admin@backoffice.dev","password":"nope"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := New("test-secret")

	req := httptest.NewRequest("GET", "/category", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/category", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/category", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, s))
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	s := New("test-secret")
	other := New("other-secret")
	token := login(t, other)

	req := httptest.NewRequest("GET", "/category", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestDeleteUserTwiceReturns404(t *testing.T) {
	s := New("test-secret")
	token := login(t, s)

	s.mu.Lock()
	id := s.users[0].ID
	s.mu.Unlock()

	req := httptest.NewRequest("DELETE", "/auth/user/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/auth/user/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "User not found", out["message"])
}

func TestOrderStatisticsWindow(t *testing.T) {
	s := New("test-secret")
	s.SeedDemo()
	token := login(t, s)

	req := httptest.NewRequest("GET", "/order/statistics?period=day", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var day models.DashboardData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&day))

	req = httptest.NewRequest("GET", "/order/statistics?period=month", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var month models.DashboardData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&month))

	// The demo seed has one order inside the last day and another a
	// day further back; widening the window can only add orders.
	assert.GreaterOrEqual(t, month.TotalOrders, day.TotalOrders)
	assert.True(t, month.DailyRevenue.GreaterThanOrEqual(day.DailyRevenue))
}

func TestCategoryListAggregates(t *testing.T) {
	s := New("test-secret")
	s.SeedDemo()
	token := login(t, s)

	req := httptest.NewRequest("GET", "/category", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out models.CategoriesResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 2, out.TotalCategories)
	assert.Equal(t, 2, out.TotalActiveCategories)
	assert.Equal(t, "Drinks", out.MostOrderedCategory.Name)
}
