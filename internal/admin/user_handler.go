package admin

import (
	"strconv"
	"strings"

	"magacin-backend/internal/auth"
	"magacin-backend/internal/database"
	"magacin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string `json:"ime"`
	Email    string `json:"email"`
	Password string `json:"lozinka"`
	Role     string `json:"uloga"` // RADNIK | DOSTAVLJAC
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"ime"`
	Email string `json:"email"`
	Role  string `json:"uloga"`
}

// GET /api/korisnici (samo vlasnik)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Korisnici ne mogu da se učitaju")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)})
		}
		return c.JSON(res)
	}
}

// POST /api/korisnici (samo vlasnik)
// Vlasnik otvara naloge za radnike i dostavljače. Drugi vlasnik ne
// može da se doda ovde.
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan JSON body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ime, email i lozinka su obavezni")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Lozinka mora imati bar 8 karaktera")
		}

		role := models.UserRole(body.Role)
		if role != models.RoleWorker && role != models.RoleCourier {
			return fiber.NewError(fiber.StatusBadRequest, "Uloga mora biti RADNIK ili DOSTAVLJAC")
		}

		var existing models.User
		if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Korisnik sa ovim email-om već postoji")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lozinka ne može da se hešuje")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Korisnik ne može da se kreira")
		}

		return c.Status(fiber.StatusCreated).JSON(UserResponse{
			ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role),
		})
	}
}

// DELETE /api/korisnici/:id (samo vlasnik)
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Neispravan ID")
		}

		// Vlasnik ne može da obriše sopstveni nalog
		if actorID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok && actorID == uint(id) {
			return fiber.NewError(fiber.StatusBadRequest, "Ne možete obrisati sopstveni nalog")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Korisnik nije pronađen")
		}
		if user.Role == models.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, "Nalog vlasnika ne može da se obriše")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Korisnik ne može da se obriše")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
