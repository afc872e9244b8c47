package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stakeroom/lobby-backend/ledger"
	"github.com/stakeroom/lobby-backend/routes"
	"github.com/stakeroom/lobby-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testCapacity = 500
	testDeposit  = 0.05
)

// nopEscrow accepts every hold and release; the HTTP tests exercise the
// controller edge, not the escrow backend.
type nopEscrow struct{}

func (nopEscrow) Hold(string, uint64, float64) error    { return nil }
func (nopEscrow) Release(string, uint64, float64) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	services.Ledger = ledger.New(testCapacity, testDeposit, nopEscrow{}, nil)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestLobby(t *testing.T, r *gin.Engine, creator string) uint64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/lobbies", gin.H{
		"capacity":      testCapacity,
		"depositAmount": testDeposit,
		"creator":       creator,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		LobbyID uint64 `json:"lobbyId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.LobbyID
}

func TestCreateLobbyEndpoint(t *testing.T) {
	t.Run("should create a lobby with the configured constants", func(t *testing.T) {
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")
		require.Equal(t, uint64(1), id)
	})

	t.Run("should reject a mismatched capacity with 400", func(t *testing.T) {
		r := newTestRouter()
		w := doJSON(t, r, http.MethodPost, "/api/lobbies", gin.H{
			"capacity":      testCapacity + 1,
			"depositAmount": testDeposit,
			"creator":       "alice",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEnrollEndpoint(t *testing.T) {
	t.Run("should enroll a participant", func(t *testing.T) {
		req := require.New(t)
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")

		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "bob"})
		req.Equal(http.StatusOK, w.Code)

		var resp struct {
			Enrolled int `json:"enrolled"`
		}
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal(1, resp.Enrolled)
	})

	t.Run("should answer 409 on duplicate enrollment", func(t *testing.T) {
		req := require.New(t)
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")

		path := fmt.Sprintf("/api/lobbies/%d/enroll", id)
		req.Equal(http.StatusOK, doJSON(t, r, http.MethodPost, path, gin.H{"identity": "bob"}).Code)
		req.Equal(http.StatusConflict, doJSON(t, r, http.MethodPost, path, gin.H{"identity": "bob"}).Code)
	})

	t.Run("should answer 404 for an unknown lobby", func(t *testing.T) {
		r := newTestRouter()
		w := doJSON(t, r, http.MethodPost, "/api/lobbies/99/enroll", gin.H{"identity": "bob"})
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepositEndpoint(t *testing.T) {
	t.Run("should accept the exact unit amount and report the balance", func(t *testing.T) {
		req := require.New(t)
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "bob"})

		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/deposit", id), gin.H{
			"identity": "bob",
			"amount":   testDeposit,
		})
		req.Equal(http.StatusOK, w.Code)

		get := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/lobbies/%d/deposits/bob", id), nil)
		req.Equal(http.StatusOK, get.Code)
		var resp struct {
			Deposit float64 `json:"deposit"`
		}
		req.NoError(json.Unmarshal(get.Body.Bytes(), &resp))
		req.Equal(testDeposit, resp.Deposit)
	})

	t.Run("should answer 400 for a wrong amount", func(t *testing.T) {
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "bob"})

		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/deposit", id), gin.H{
			"identity": "bob",
			"amount":   testDeposit * 3,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelAndWithdrawEndpoints(t *testing.T) {
	t.Run("should answer 403 for a non-creator cancel", func(t *testing.T) {
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/cancel", id), gin.H{"identity": "mallory"})
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should still allow withdrawal after cancellation", func(t *testing.T) {
		req := require.New(t)
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")

		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "bob"})
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/deposit", id), gin.H{"identity": "bob", "amount": testDeposit})

		req.Equal(http.StatusOK, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/cancel", id), gin.H{"identity": "alice"}).Code)
		req.Equal(http.StatusConflict, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "carol"}).Code)
		req.Equal(http.StatusOK, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/withdraw", id), gin.H{"identity": "bob"}).Code)

		status := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/lobbies/%d", id), nil)
		req.Equal(http.StatusOK, status.Code)
		var resp struct {
			Enrolled int  `json:"enrolled"`
			Canceled bool `json:"canceled"`
		}
		req.NoError(json.Unmarshal(status.Body.Bytes(), &resp))
		req.Zero(resp.Enrolled)
		req.True(resp.Canceled)
	})
}

func TestStartGameEndpoint(t *testing.T) {
	t.Run("should signal start for a funded participant and reject strangers", func(t *testing.T) {
		req := require.New(t)
		r := newTestRouter()
		id := createTestLobby(t, r, "alice")

		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/enroll", id), gin.H{"identity": "A"})
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/lobbies/%d/deposit", id), gin.H{"identity": "A", "amount": testDeposit})

		path := fmt.Sprintf("/api/lobbies/%d/start", id)
		req.Equal(http.StatusOK, doJSON(t, r, http.MethodPost, path, gin.H{"identity": "A"}).Code)
		req.Equal(http.StatusBadRequest, doJSON(t, r, http.MethodPost, path, gin.H{"identity": "B"}).Code)
	})
}
