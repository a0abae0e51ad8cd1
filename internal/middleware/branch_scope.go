package middleware

import (
	"net/http"
	"strconv"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyBranchID holds the branch every handler scopes its queries to.
	ContextKeyBranchID = "branch_id"
	// HeaderBranchID lets a superadmin act inside one branch.
	HeaderBranchID = "X-Branch-ID"
)

// BranchScope resolves the caller's branch. Branch users are pinned to the
// branch in their token. Superadmins pick one with the X-Branch-ID header or
// ?branch_id=, and requests without either are rejected.
func BranchScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != model.RoleSuperadmin {
			if claims.BranchID == 0 {
				response.AbortFail(c, http.StatusForbidden, response.ErrBranchMismatch)
				return
			}
			c.Set(ContextKeyBranchID, claims.BranchID)
			c.Next()
			return
		}

		raw := c.GetHeader(HeaderBranchID)
		if raw == "" {
			raw = c.Query("branch_id")
		}
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			response.AbortFail(c, http.StatusBadRequest, response.ErrBranchRequired)
			return
		}
		c.Set(ContextKeyBranchID, id)
		c.Next()
	}
}

// GetBranchID returns the branch resolved by BranchScope, or 0.
func GetBranchID(c *gin.Context) int {
	return c.GetInt(ContextKeyBranchID)
}
