// Package vpclattice lists Amazon VPC Lattice service networks and services
// one page at a time for the core resolver.
package vpclattice

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/vpclattice"
	"github.com/aws/smithy-go"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lattice/core"
)

const ProviderID = "vpc-lattice"

// Client is the subset of the VPC Lattice API the provider calls.
type Client interface {
	ListServiceNetworks(ctx context.Context, params *sdk.ListServiceNetworksInput, optFns ...func(*sdk.Options)) (*sdk.ListServiceNetworksOutput, error)
	ListServices(ctx context.Context, params *sdk.ListServicesInput, optFns ...func(*sdk.Options)) (*sdk.ListServicesOutput, error)
}

type Config struct {
	// PageSize maps to MaxResults; zero leaves the service default.
	PageSize int32
}

type Provider struct {
	client   Client
	pageSize int32
}

func New(client Client, cfg Config) *Provider {
	return &Provider{client: client, pageSize: cfg.PageSize}
}

// NewFromConfig builds the SDK client from a loaded AWS config.
func NewFromConfig(awsCfg aws.Config, cfg Config, optFns ...func(*sdk.Options)) *Provider {
	return New(sdk.NewFromConfig(awsCfg, optFns...), cfg)
}

func (p *Provider) ID() string { return ProviderID }

func (p *Provider) ListEntities(ctx context.Context, kind core.EntityKind, token string) (core.ListingPage, error) {
	if p == nil || p.client == nil {
		return core.ListingPage{}, fmt.Errorf("vpclattice: client is not configured")
	}
	switch kind {
	case core.EntityKindServiceNetwork, "":
		return p.listServiceNetworks(ctx, token)
	case core.EntityKindService:
		return p.listServices(ctx, token)
	default:
		return core.ListingPage{}, goerrors.New(
			fmt.Sprintf("vpclattice: unsupported entity kind %q", kind),
			goerrors.CategoryBadInput,
		).WithTextCode(core.LatticeErrorBadInput)
	}
}

func (p *Provider) listServiceNetworks(ctx context.Context, token string) (core.ListingPage, error) {
	input := &sdk.ListServiceNetworksInput{
		NextToken:  optionalString(token),
		MaxResults: optionalInt32(p.pageSize),
	}
	out, err := p.client.ListServiceNetworks(ctx, input)
	if err != nil {
		return core.ListingPage{}, wrapAPIError(err, "ListServiceNetworks")
	}
	if out == nil {
		return core.ListingPage{}, nil
	}
	page := core.ListingPage{
		Items:     make([]core.Entity, 0, len(out.Items)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, item := range out.Items {
		page.Items = append(page.Items, core.Entity{
			Name: aws.ToString(item.Name),
			ID:   aws.ToString(item.Id),
			ARN:  aws.ToString(item.Arn),
		})
	}
	return page, nil
}

func (p *Provider) listServices(ctx context.Context, token string) (core.ListingPage, error) {
	input := &sdk.ListServicesInput{
		NextToken:  optionalString(token),
		MaxResults: optionalInt32(p.pageSize),
	}
	out, err := p.client.ListServices(ctx, input)
	if err != nil {
		return core.ListingPage{}, wrapAPIError(err, "ListServices")
	}
	if out == nil {
		return core.ListingPage{}, nil
	}
	page := core.ListingPage{
		Items:     make([]core.Entity, 0, len(out.Items)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, item := range out.Items {
		page.Items = append(page.Items, core.Entity{
			Name: aws.ToString(item.Name),
			ID:   aws.ToString(item.Id),
			ARN:  aws.ToString(item.Arn),
		})
	}
	return page, nil
}

// wrapAPIError keeps the AWS error code visible to logs and to the error
// mapper (throttling, access denied) without hiding the SDK error.
func wrapAPIError(err error, operation string) error {
	if err == nil {
		return nil
	}
	metadata := map[string]any{
		"provider_id": ProviderID,
		"operation":   operation,
	}
	category := goerrors.CategoryExternal
	var apiErr smithy.APIError
	if goerrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		metadata["aws_error_code"] = code
		metadata["aws_error_message"] = apiErr.ErrorMessage()
		metadata["aws_error_fault"] = apiErr.ErrorFault().String()
		switch {
		case strings.Contains(code, "Throttling"):
			category = goerrors.CategoryRateLimit
		case strings.Contains(code, "AccessDenied"):
			category = goerrors.CategoryAuthz
		}
	}
	return goerrors.Wrap(err, category, fmt.Sprintf("vpclattice: %s failed", operation)).
		WithMetadata(metadata)
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return aws.String(value)
}

func optionalInt32(value int32) *int32 {
	if value <= 0 {
		return nil
	}
	return aws.Int32(value)
}

var _ core.EntityLister = (*Provider)(nil)
