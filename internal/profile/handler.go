package profile

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/shopsense/server/internal/auth"
	"github.com/shopsense/server/internal/avatar"
)

// AvatarStorage stores an uploaded avatar and returns its public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

type Handler struct {
	service *Service
	avatars AvatarStorage
}

func NewHandler(service *Service, avatars AvatarStorage) *Handler {
	return &Handler{service: service, avatars: avatars}
}

type updateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	p, err := h.service.GetProfile(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	return c.JSON(fiber.Map{"user": p})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	p, err := h.service.UpdateProfile(userID, Profile{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already in use"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    p,
	})
}

func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, avatar.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only JPEG and PNG images are allowed"})
		case errors.Is(err, avatar.ErrTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be 5MB or smaller"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store avatar"})
	}

	if err := h.service.UpdateAvatar(userID, url); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update avatar"})
	}

	return c.JSON(fiber.Map{
		"message": "Avatar updated successfully",
		"avatar":  url,
	})
}
