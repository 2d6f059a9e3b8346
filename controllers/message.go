package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// SendMessage delivers a message from the caller to another user.
func SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type MessageInput struct {
		RecipientID uint   `json:"recipient_id"`
		Body        string `json:"body"`
	}

	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Message body must not be empty",
		})
	}
	if input.RecipientID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot send a message to yourself",
		})
	}

	var recipient models.User
	if err := db.DB.First(&recipient, input.RecipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Recipient not found",
			Error:   err.Error(),
		})
	}

	message := models.Message{
		SenderID:    userID,
		RecipientID: input.RecipientID,
		Body:        input.Body,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to send message",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// defaultPageSize caps one conversation page; clients page with
// ?limit= and ?offset=.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func parsePagination(limitStr, offsetStr string) (limit, offset int) {
	limit = defaultPageSize
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= maxPageSize {
		limit = n
	}
	if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// GetConversation lists a page of the messages between the caller and a
// peer, oldest first, and marks the peer's messages as read.
func GetConversation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	peerID := c.Params("id")

	limit, offset := parsePagination(c.Query("limit"), c.Query("offset"))

	var messages []models.Message
	err := db.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch conversation",
			Error:   err.Error(),
		})
	}

	now := time.Now()
	db.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", peerID, userID).
		Update("read_at", now)

	return c.JSON(messages)
}

// GetUnreadCount returns how many unread messages the caller has.
func GetUnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var count int64
	if err := db.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to count unread messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"unread": count})
}
