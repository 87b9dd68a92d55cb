package wishlist

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

type addRequest struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Image         string  `json:"image"`
	Store         string  `json:"store"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	Description   string  `json:"description"`
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	items, err := h.service.Get(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load wishlist"})
	}

	return c.JSON(fiber.Map{"wishlist": items})
}

func (h *Handler) Add(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "productId is required"})
	}

	items, err := h.service.Add(userID, user.WishlistItem{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Brand:         req.Brand,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Store:         req.Store,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		Description:   req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, user.ErrDuplicateItem):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "product already in wishlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to add to wishlist"})
	}

	return c.JSON(fiber.Map{
		"message":  "Product added to wishlist",
		"wishlist": items,
	})
}

func (h *Handler) Remove(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	items, err := h.service.Remove(userID, c.Params("productId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, user.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found in wishlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove from wishlist"})
	}

	return c.JSON(fiber.Map{
		"message":  "Product removed from wishlist",
		"wishlist": items,
	})
}
