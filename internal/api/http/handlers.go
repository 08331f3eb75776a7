package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ViktorDebugger/DeliFood-server/internal/auth"
	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
	"github.com/ViktorDebugger/DeliFood-server/internal/service"
)

type Handler struct {
	Dishes  service.DishServiceInterface
	Orders  service.OrderServiceInterface
	Auth    service.AuthServiceInterface
	protect func(http.HandlerFunc) http.HandlerFunc
}

func NewHandler(dishes service.DishServiceInterface, orders service.OrderServiceInterface,
	authSvc service.AuthServiceInterface, mw *AuthMiddleware) *Handler {
	return &Handler{
		Dishes:  dishes,
		Orders:  orders,
		Auth:    authSvc,
		protect: mw.Protect,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/dishes", h.listDishes).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{userId}", h.protect(h.listOrders)).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/qrcode", h.protect(h.getOrderQRCode)).Methods("GET")
	r.HandleFunc("/api/orders/{userId}/{orderId}/{dishId}", h.protect(h.rateOrderItem)).Methods("PATCH")

	r.HandleFunc("/api/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/login", h.logIn).Methods("POST")
	r.HandleFunc("/api/logout", h.protect(h.logOut)).Methods("POST")
	r.HandleFunc("/api/user", h.protect(h.currentUser)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "delifood-server",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.List(r.Context())
	if errors.Is(err, service.ErrNoDishes) {
		writeError(w, http.StatusNotFound, "Страви не знайдено", nil)
		return
	}
	if err != nil {
		log.Printf("failed to load dishes: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при отриманні страв", err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string        `json:"userId"`
		Order  *domain.Order `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Відсутні дані про користувача або замовлення", nil)
		return
	}
	if req.UserID == "" || req.Order == nil {
		writeError(w, http.StatusBadRequest, "Відсутні дані про користувача або замовлення", nil)
		return
	}

	orderID, err := h.Orders.Create(r.Context(), req.UserID, req.Order)
	if errors.Is(err, service.ErrInvalidOrder) {
		writeError(w, http.StatusBadRequest, "Відсутні дані про користувача або замовлення", nil)
		return
	}
	if err != nil {
		log.Printf("failed to save order: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при збереженні замовлення", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"orderId": orderID})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("failed to load orders for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Помилка при завантаженні замовлень", nil)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) rateOrderItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, orderID, dishID := vars["userId"], vars["orderId"], vars["dishId"]

	var req struct {
		Grade *int `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Відсутні дані", nil)
		return
	}
	if userID == "" || orderID == "" || dishID == "" || req.Grade == nil {
		writeError(w, http.StatusBadRequest, "Відсутні дані", nil)
		return
	}

	err := h.Orders.RateItem(r.Context(), orderID, dishID, *req.Grade)
	if errors.Is(err, service.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "Страва не знайдена", nil)
		return
	}
	if err != nil {
		log.Printf("failed to update grade: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при оновленні оцінки", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Оцінка оновлена"})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	qr, err := h.Orders.GetQRCode(r.Context(), orderID)
	if errors.Is(err, service.ErrOrderNotFound) || (err == nil && len(qr) == 0) {
		writeError(w, http.StatusNotFound, "Замовлення не знайдено", nil)
		return
	}
	if err != nil {
		log.Printf("failed to load QR code: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при отриманні QR-коду", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Відсутні обов'язкові поля", nil)
		return
	}

	token, account, err := h.Auth.SignUp(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailInUse) {
		writeError(w, http.StatusBadRequest, "Обліковий запис з такою електронною поштою вже існує", nil)
		return
	}
	if err != nil {
		log.Printf("signup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при створенні користувача", nil)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Користувача успішно створено",
		"token":   token,
		"user":    account,
	})
}

func (h *Handler) logIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Відсутні обов'язкові поля", nil)
		return
	}

	token, account, err := h.Auth.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("login failed: %v", err)
		writeError(w, http.StatusUnauthorized, "Неправильний email або пароль", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Успішний вхід",
		"token":   token,
		"user":    account,
	})
}

func (h *Handler) logOut(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r)

	if err := h.Auth.LogOut(r.Context(), identity.UID); err != nil {
		log.Printf("logout failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при виході", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Успішний вихід"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r)

	account, err := h.Auth.Account(r.Context(), identity.UID)
	if err != nil {
		log.Printf("failed to load user: %v", err)
		writeError(w, http.StatusInternalServerError, "Помилка при отриманні даних користувача", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": account})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError renders the error body shared by every failure response. The
// wrapped error detail is attached only for internal failures, never for
// auth ones.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}
