package handlers

import (
	"net/http"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// requireRole verifies the authenticated user holds the given role, aborting with 403
// otherwise. Returns the user ID on success.
func requireRole(c *gin.Context, userSvc portssvc.UserReaderSvc, role domain.Role) (string, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return "", false
	}

	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	if !user.HasRole(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient privileges"})
		return "", false
	}

	return userID, true
}
