package spapi

import "strings"

// LWATokenURL is the Login with Amazon token endpoint, shared by all regions.
const LWATokenURL = "https://api.amazon.com/auth/o2/token"

// Regional SP-API hosts.
var regionEndpoints = map[string]string{
	"NA": "https://sellingpartnerapi-na.amazon.com",
	"EU": "https://sellingpartnerapi-eu.amazon.com",
	"FE": "https://sellingpartnerapi-fe.amazon.com",
}

// Marketplace identifiers for the marketplaces this integration serves.
var marketplaceIDs = map[string]string{
	"US": "ATVPDKIKX0DER",
	"CA": "A2EUQ1WTGCTBG2",
	"MX": "A1AM78C64UM0Y8",
	"DE": "A1PA6795UKMFR9",
	"GB": "A1F83G8C2ARO7P",
	"FR": "A13V1IB3VIYZZH",
	"IT": "APJ6JRA9NG5V4",
	"ES": "A1RKKUPIHCS9HS",
	"NL": "A1805IZSGTT6HS",
	"SE": "A2NODRKZP88ZB9",
	"PL": "A1C3SOZRARQ6R3",
	"TR": "A33AVAJ2PDY3EV",
	"JP": "A1VC38T7YXB528",
	"AU": "A39IBJ37TRP1C6",
}

// EndpointForRegion resolves the SP-API base URL of a region code.
func EndpointForRegion(region string) (string, bool) {
	endpoint, ok := regionEndpoints[strings.ToUpper(strings.TrimSpace(region))]
	return endpoint, ok
}

// MarketplaceID resolves a marketplace country code to its Amazon identifier.
func MarketplaceID(code string) (string, bool) {
	id, ok := marketplaceIDs[strings.ToUpper(strings.TrimSpace(code))]
	return id, ok
}
