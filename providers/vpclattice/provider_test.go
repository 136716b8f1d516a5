package vpclattice

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/vpclattice"
	"github.com/aws/aws-sdk-go-v2/service/vpclattice/types"
	"github.com/aws/smithy-go"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lattice/core"
)

type stubClient struct {
	listServiceNetworksFn func(context.Context, *sdk.ListServiceNetworksInput) (*sdk.ListServiceNetworksOutput, error)
	listServicesFn        func(context.Context, *sdk.ListServicesInput) (*sdk.ListServicesOutput, error)
}

func (s stubClient) ListServiceNetworks(ctx context.Context, params *sdk.ListServiceNetworksInput, _ ...func(*sdk.Options)) (*sdk.ListServiceNetworksOutput, error) {
	if s.listServiceNetworksFn == nil {
		return &sdk.ListServiceNetworksOutput{}, nil
	}
	return s.listServiceNetworksFn(ctx, params)
}

func (s stubClient) ListServices(ctx context.Context, params *sdk.ListServicesInput, _ ...func(*sdk.Options)) (*sdk.ListServicesOutput, error) {
	if s.listServicesFn == nil {
		return &sdk.ListServicesOutput{}, nil
	}
	return s.listServicesFn(ctx, params)
}

func TestProvider_ListServiceNetworksMapsPage(t *testing.T) {
	var seen *sdk.ListServiceNetworksInput
	provider := New(stubClient{
		listServiceNetworksFn: func(_ context.Context, in *sdk.ListServiceNetworksInput) (*sdk.ListServiceNetworksOutput, error) {
			seen = in
			return &sdk.ListServiceNetworksOutput{
				Items: []types.ServiceNetworkSummary{
					{Name: aws.String("mesh-a"), Id: aws.String("sn-0001"), Arn: aws.String("arn:aws:vpc-lattice:us-east-1:111122223333:servicenetwork/sn-0001")},
					{Name: aws.String("mesh-b"), Id: aws.String("sn-0002")},
				},
				NextToken: aws.String("t2"),
			}, nil
		},
	}, Config{PageSize: 25})

	page, err := provider.ListEntities(context.Background(), core.EntityKindServiceNetwork, "")
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}
	if seen.NextToken != nil {
		t.Fatalf("expected nil token on first page, got %q", aws.ToString(seen.NextToken))
	}
	if aws.ToInt32(seen.MaxResults) != 25 {
		t.Fatalf("expected max results 25, got %v", seen.MaxResults)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "sn-0001" || page.Items[1].Name != "mesh-b" {
		t.Fatalf("unexpected items %#v", page.Items)
	}
	if page.Items[1].ARN != "" {
		t.Fatalf("expected empty arn for missing field, got %q", page.Items[1].ARN)
	}
	if page.NextToken != "t2" {
		t.Fatalf("expected next token t2, got %q", page.NextToken)
	}
}

func TestProvider_ListServicesForwardsToken(t *testing.T) {
	var seen *sdk.ListServicesInput
	provider := New(stubClient{
		listServicesFn: func(_ context.Context, in *sdk.ListServicesInput) (*sdk.ListServicesOutput, error) {
			seen = in
			return &sdk.ListServicesOutput{
				Items: []types.ServiceSummary{{Name: aws.String("orders"), Id: aws.String("svc-0001")}},
			}, nil
		},
	}, Config{})

	page, err := provider.ListEntities(context.Background(), core.EntityKindService, "t7")
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}
	if aws.ToString(seen.NextToken) != "t7" {
		t.Fatalf("expected token t7, got %q", aws.ToString(seen.NextToken))
	}
	if seen.MaxResults != nil {
		t.Fatalf("expected service default page size")
	}
	if page.HasMore() {
		t.Fatalf("expected last page")
	}
	if page.Items[0].ID != "svc-0001" {
		t.Fatalf("unexpected items %#v", page.Items)
	}
}

func TestProvider_WrapsAPIErrors(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "Rate exceeded", Fault: smithy.FaultClient}
	provider := New(stubClient{
		listServiceNetworksFn: func(context.Context, *sdk.ListServiceNetworksInput) (*sdk.ListServiceNetworksOutput, error) {
			return nil, apiErr
		},
	}, Config{})

	_, err := provider.ListEntities(context.Background(), core.EntityKindServiceNetwork, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, apiErr) {
		t.Fatalf("expected sdk error in chain")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryRateLimit {
		t.Fatalf("expected rate limit category, got %s", rich.Category)
	}
	if rich.Metadata["aws_error_code"] != "ThrottlingException" {
		t.Fatalf("expected aws_error_code metadata, got %#v", rich.Metadata)
	}
}

func TestProvider_RejectsUnknownKind(t *testing.T) {
	provider := New(stubClient{}, Config{})
	_, err := provider.ListEntities(context.Background(), core.EntityKind("listener"), "")
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input error, got %v", err)
	}
}

func TestProvider_ResolvesThroughCore(t *testing.T) {
	pages := map[string]*sdk.ListServiceNetworksOutput{
		"": {
			Items:     []types.ServiceNetworkSummary{{Name: aws.String("a"), Id: aws.String("1")}},
			NextToken: aws.String("t2"),
		},
		"t2": {
			Items: []types.ServiceNetworkSummary{{Name: aws.String("b"), Id: aws.String("2")}},
		},
	}
	calls := 0
	provider := New(stubClient{
		listServiceNetworksFn: func(_ context.Context, in *sdk.ListServiceNetworksInput) (*sdk.ListServiceNetworksOutput, error) {
			calls++
			return pages[aws.ToString(in.NextToken)], nil
		},
	}, Config{})

	result, err := core.NewResolver(provider).Resolve(context.Background(), core.ResolutionRequest{TargetName: "b"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.ID != "2" || calls != 2 {
		t.Fatalf("expected id 2 after two calls, got id=%q calls=%d", result.ID, calls)
	}
}

func TestProvider_NilClient(t *testing.T) {
	var provider *Provider
	if _, err := provider.ListEntities(context.Background(), core.EntityKindService, ""); err == nil {
		t.Fatalf("expected error for nil provider")
	}
}

func TestProvider_ResolveWithKindAliasCallsListing(t *testing.T) {
	calls := 0
	provider := New(stubClient{
		listServiceNetworksFn: func(context.Context, *sdk.ListServiceNetworksInput) (*sdk.ListServiceNetworksOutput, error) {
			calls++
			return &sdk.ListServiceNetworksOutput{
				Items: []types.ServiceNetworkSummary{{Name: aws.String("mesh-a"), Id: aws.String("sn-0001")}},
			}, nil
		},
	}, Config{})
	svc, err := core.NewService(core.DefaultConfig(), core.WithLister(provider))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Resolve(context.Background(), core.ResolutionRequest{TargetName: "mesh-a", Kind: core.EntityKind("network")})
	if err != nil {
		t.Fatalf("resolve with alias kind: %v", err)
	}
	if result.ID != "sn-0001" || calls != 1 {
		t.Fatalf("expected one listing call and sn-0001, got %#v calls=%d", result, calls)
	}
}
