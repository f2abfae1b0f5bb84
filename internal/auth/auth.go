package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// IssueClientToken signs a dashboard token for a client. The token only
// carries the client id; everything else is looked up fresh on each
// request so revoking a client revokes its token.
func IssueClientToken(secret, clientID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": clientID,
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

func verifyClientToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	clientID, _ := claims["sub"].(string)
	if clientID == "" {
		return "", fmt.Errorf("token missing client id")
	}
	return clientID, nil
}

// ClientMiddleware authenticates client dashboard calls via an
// x-client-token header and puts the loaded client record in the context.
func ClientMiddleware(secret string, clients services.ClientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("x-client-token")
		if tokenString == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Client access denied"})
			c.Abort()
			return
		}

		clientID, err := verifyClientToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid client token"})
			c.Abort()
			return
		}

		client, err := clients.FindByClientID(clientID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid client token"})
			c.Abort()
			return
		}

		c.Set("client", client)
		c.Next()
	}
}

// AdminMiddleware guards the admin dashboard with the shared x-admin-token
// header. An unset server-side token is a misconfiguration, not an open
// door.
func AdminMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration"})
			c.Abort()
			return
		}
		if c.GetHeader("x-admin-token") != adminToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
