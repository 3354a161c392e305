package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"recycup/config"
	"recycup/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and sets the user email in context.
// With a Cognito pool configured the token is introspected against the pool;
// otherwise it is parsed as a locally signed JWT.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization token"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Authorization token format"})
			c.Abort()
			return
		}
		token := parts[1]

		var email string
		var err error
		if cfg.Cognito.UserPoolId != "" {
			email, err = fetchEmailWithCognito(c, cfg.Cognito.Region, token)
		} else {
			_, email, err = utils.ValidateTokenAndFetchEmail(token)
		}
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Token validation error: %v", err)})
			c.Abort()
			return
		}
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Set("accessToken", token)
		c.Next()
	}
}

// fetchEmailWithCognito introspects an access token via GetUser and returns
// the email attribute
func fetchEmailWithCognito(c *gin.Context, region, token string) (string, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(c, awsConfig.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %v", err)
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)

	out, err := cognitoClient.GetUser(c, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(token),
	})
	if err != nil {
		return "", fmt.Errorf("token validation failed: %v", err)
	}

	for _, attr := range out.UserAttributes {
		if attr.Name != nil && *attr.Name == "email" && attr.Value != nil {
			return *attr.Value, nil
		}
	}
	if out.Username != nil {
		return *out.Username, nil
	}
	return "", fmt.Errorf("no email attribute on token")
}
