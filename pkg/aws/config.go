package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rs/zerolog/log"

	"sla.service/internal/config"
)

// NewAWSConfig loads the SDK config. In local development every client is
// pointed at the LocalStack endpoint with static credentials.
func NewAWSConfig(ctx context.Context, appConfig config.Config) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(appConfig.AWSRegion)}
	opts = append(opts, localStackOptions(appConfig)...)
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}

func localStackOptions(appConfig config.Config) []func(*awsConfig.LoadOptions) error {
	if !appConfig.IsLocalDev {
		log.Info().Msg("Production mode detected. Using standard AWS credential chain.")
		return nil
	}

	log.Info().Str("endpoint", appConfig.AWSEndpoint).Msg("Local development mode detected. Routing AWS calls to LocalStack.")
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	}
	if appConfig.AWSEndpoint != "" {
		opts = append(opts, awsConfig.WithBaseEndpoint(appConfig.AWSEndpoint))
	}
	return opts
}
