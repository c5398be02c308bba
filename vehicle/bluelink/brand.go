package bluelink

// Brand describes a telematics backend variant. Hyundai and Genesis run
// the same protocol on separate hosts with their own brand indicator.
type Brand struct {
	Name           string
	Host           string
	BrandIndicator string
	URI            string // overrides the https host, used for testing
}

var (
	Hyundai = Brand{
		Name:           "hyundai",
		Host:           "api.telematics.hyundaiusa.com",
		BrandIndicator: "H",
	}

	Genesis = Brand{
		Name:           "genesis",
		Host:           "api.telematics.genesis.com",
		BrandIndicator: "G",
	}
)

func (b Brand) base() string {
	if b.URI != "" {
		return b.URI
	}
	return "https://" + b.Host
}

// LoginURI is the oauth endpoint base
func (b Brand) LoginURI() string {
	return b.base() + "/v2/ac/"
}

// BaseURI is the vehicle api base
func (b Brand) BaseURI() string {
	return b.base() + "/ac/v2/"
}
