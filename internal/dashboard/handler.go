package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopsense/server/internal/auth"
	"github.com/shopsense/server/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type searchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

type productViewRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Store     string  `json:"store"`
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	data, err := h.service.GetDashboard(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load dashboard"})
	}

	return c.JSON(fiber.Map{"dashboardData": data})
}

func (h *Handler) AddSearch(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}

	if err := h.service.AddSearchHistory(userID, req.Query, req.Category); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record search"})
	}

	return c.JSON(fiber.Map{"message": "Search added to history"})
}

func (h *Handler) AddProductView(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	var req productViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "productId is required"})
	}

	err = h.service.AddProductView(userID, user.ViewedProduct{
		ProductID: req.ProductID,
		Name:      req.Name,
		Brand:     req.Brand,
		Price:     req.Price,
		Image:     req.Image,
		Store:     req.Store,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record product view"})
	}

	return c.JSON(fiber.Map{"message": "Product view recorded"})
}
