package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/ml"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// GetAllDoctors returns every doctor profile, optionally filtered by
// specialization via the ?specialization= query parameter.
func GetAllDoctors(c *fiber.Ctx) error {
	query := db.DB.Preload("User")
	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization ILIKE ?", spec)
	}

	var doctors []models.DoctorProfile
	if err := query.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// GetDoctor returns one doctor profile by user ID.
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.DoctorProfile
	if err := db.DB.Preload("User").Where("user_id = ?", id).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// UpdateDoctorProfile lets a doctor edit their own profile.
func UpdateDoctorProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	type ProfileInput struct {
		Specialization  *string `json:"specialization"`
		Bio             *string `json:"bio"`
		FeeCents        *int64  `json:"fee_cents"`
		YearsExperience *int    `json:"years_experience"`
		Timezone        *string `json:"timezone"`
		Languages       *string `json:"languages"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Specialization != nil {
		profile.Specialization = *input.Specialization
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.FeeCents != nil {
		profile.FeeCents = *input.FeeCents
	}
	if input.YearsExperience != nil {
		profile.YearsExperience = *input.YearsExperience
	}
	if input.Timezone != nil {
		profile.Timezone = *input.Timezone
	}
	if input.Languages != nil {
		profile.Languages = *input.Languages
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(profile)
}

// UploadProfilePicture stores a doctor's avatar on Cloudinary and saves the
// returned URL on the profile.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing picture file",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to open uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfilePicture(file, fmt.Sprintf("doctor-%d", userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload picture",
			Error:   err.Error(),
		})
	}

	profile.ProfilePicture = url
	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save picture URL",
			Error:   err.Error(),
		})
	}
	return c.JSON(profile)
}

// MatchDoctors ranks all doctors against the caller's stated preferences
// using the heuristic scorer and returns them best first.
func MatchDoctors(c *fiber.Ctx) error {
	var criteria ml.MatchCriteria
	if err := c.BodyParser(&criteria); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var doctors []models.DoctorProfile
	if err := db.DB.Preload("User").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	return c.JSON(ml.RankDoctors(criteria, doctors))
}
