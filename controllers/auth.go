package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"recycup/config"
	"recycup/db"
	"recycup/structs"
	"recycup/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SignUp(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	nickname := request.Nickname
	if nickname == "" {
		nickname = utils.ExtractNameFromEmail(request.Email)
	}

	passwordHash := ""
	if cfg.Cognito.UserPoolId != "" {
		if err := signUpWithCognito(cfg.Cognito.AppClientId, cfg.Cognito.AppClientSecret, cfg.Cognito.Region, request.Email, request.Password, nickname, ctx); err != nil {
			ctx.JSON(500, gin.H{"error": "Failed to sign up", "message": err.Error()})
			return
		}
	} else {
		hash, err := utils.HashPassword(request.Password)
		if err != nil {
			ctx.JSON(500, gin.H{"error": "Failed to sign up", "message": err.Error()})
			return
		}
		passwordHash = hash
	}

	// Profile document starts with both counters at zero
	if err := db.CreateUserProfile(ctx, request.Email, nickname, passwordHash); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to create profile", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{"message": "Sign-up successful"})
}

func Login(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	var token string
	var err error
	if cfg.Cognito.UserPoolId != "" {
		token, err = loginWithCognito(cfg.Cognito.AppClientId, cfg.Cognito.AppClientSecret, cfg.Cognito.Region, request.Email, request.Password, ctx)
	} else {
		token, err = loginWithLocalPassword(ctx, cfg, request.Email, request.Password)
	}
	if err != nil {
		ctx.JSON(401, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	ctx.JSON(200, gin.H{"message": "Sign-in successful", "accessToken": token})
}

// Logout revokes the caller's session with the auth provider. On provider
// failure nothing changes locally; the next token check settles the state.
func Logout(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	if cfg.Cognito.UserPoolId == "" {
		// Local tokens are stateless; expiry is the only revocation
		ctx.JSON(200, gin.H{"message": "Signed out"})
		return
	}

	token := ctx.GetString("accessToken")
	if token == "" {
		ctx.JSON(401, gin.H{"error": "Missing token"})
		return
	}

	if err := signOutWithCognito(cfg.Cognito.Region, token, ctx); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to sign out", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{"message": "Signed out"})
}

// Session reports the identity bound to the presented token
func Session(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(401, gin.H{"authenticated": false})
		return
	}
	ctx.JSON(200, gin.H{"authenticated": true, "email": email})
}

func loadConfig(ctx *gin.Context) *config.Config {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Println("Failed to load config")
		ctx.JSON(500, gin.H{"error": "Internal server error"})
		return nil
	}
	return cfg
}

func signUpWithCognito(appClientId, appClientSecret, region, email, password, nickname string, ctx *gin.Context) error {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		log.Println("Error loading AWS config:", err)
		return fmt.Errorf("failed to load AWS config: %v", err)
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)

	secretHash := utils.GenerateSecretHash(email, appClientId, appClientSecret)

	signupInput := cognitoidentityprovider.SignUpInput{
		ClientId:   aws.String(appClientId),
		Password:   aws.String(password),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(email),
			},
			{
				Name:  aws.String("nickname"),
				Value: aws.String(nickname),
			},
		},
	}

	if _, err := cognitoClient.SignUp(ctx, &signupInput); err != nil {
		log.Println("Error during sign-up:", err)
		return fmt.Errorf("sign-up failed: %v", err)
	}

	return nil
}

func loginWithCognito(appClientId, appClientSecret, region, email, password string, ctx *gin.Context) (string, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config")
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)
	secretHash := utils.GenerateSecretHash(email, appClientId, appClientSecret)

	authInput := cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(appClientId),
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": secretHash,
		},
	}

	authOutput, err := cognitoClient.InitiateAuth(ctx, &authInput)
	if err != nil {
		return "", fmt.Errorf("authentication failed")
	}

	return *authOutput.AuthenticationResult.AccessToken, nil
}

func signOutWithCognito(region, token string, ctx *gin.Context) error {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config")
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)

	if _, err := cognitoClient.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(token),
	}); err != nil {
		log.Println("Error during sign-out:", err)
		return fmt.Errorf("sign-out failed: %v", err)
	}

	return nil
}

func loginWithLocalPassword(ctx *gin.Context, cfg *config.Config, email, password string) (string, error) {
	user, err := db.GetUserProfile(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", fmt.Errorf("unknown account")
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", fmt.Errorf("password mismatch")
	}

	expiry := time.Duration(cfg.JWT.Expiry) * time.Minute
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return utils.GenerateJWTToken(email, expiry)
}
