package lattice

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/vpclattice"
	"github.com/goliatone/go-lattice/auth"
	"github.com/goliatone/go-lattice/providers/vpclattice"
	"github.com/goliatone/go-lattice/transport"
)

func VPCLatticeLister(awsCfg aws.Config, cfg vpclattice.Config, optFns ...func(*sdk.Options)) *vpclattice.Provider {
	return vpclattice.NewFromConfig(awsCfg, cfg, optFns...)
}

// SignedTransport returns a REST adapter that signs every request with SigV4
// for the configured signing service.
func SignedTransport(awsCfg aws.Config, cfg Config, client transport.HTTPDoer) (*transport.RESTAdapter, error) {
	signer, err := auth.NewSigV4SignerFromConfig(awsCfg, cfg.SigningService())
	if err != nil {
		return nil, err
	}
	adapter := transport.NewRESTAdapter(client, signer)
	if cfg.Forward.MaxResponseBodyBytes > 0 {
		adapter.MaxResponseBodyBytes = cfg.Forward.MaxResponseBodyBytes
	}
	return adapter, nil
}
