package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/bookshelf/internal/logger"
)

const (
	// CookieName is the cookie carrying the profile token
	CookieName = "bookshelf_profile"
	// ContextProfileID is the key for the profile id in gin context
	ContextProfileID = "profile_id"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// ProfileMiddleware resolves the caller's profile from its cookie, issuing
// a new profile when the cookie is absent or invalid. The cookie is
// refreshed on every request.
func ProfileMiddleware(signer *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profileID, token string
		if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
			if claims, err := signer.ValidateToken(raw); err == nil {
				profileID, token = claims.ProfileID, raw
			}
		}

		if profileID == "" {
			profileID = NewProfileID()
			var err error
			token, err = signer.GenerateToken(profileID)
			if err != nil {
				logger.For(c.Request.Context()).WithError(err).Error("Failed to issue profile token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
				return
			}
			logger.For(c.Request.Context()).WithField("profile_id", profileID).Info("Issued new profile")
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, token, cookieMaxAge, "/", "", c.Request.TLS != nil, true)
		c.Set(ContextProfileID, profileID)

		c.Next()
	}
}

// GetProfileID retrieves the profile id from the gin context
func GetProfileID(c *gin.Context) string {
	if profileID, exists := c.Get(ContextProfileID); exists {
		return profileID.(string)
	}
	return ""
}
