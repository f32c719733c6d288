// ABOUTME: Request DTOs for the authenticated /me endpoints

package requests

// ImportRequest is the body of POST /me/import
type ImportRequest struct {
	_          struct{} `json:"-" additionalProperties:"true"`
	Code       string   `json:"code" minLength:"1" doc:"Share code to import from"`
	ProductIDs []string `json:"productIds" doc:"Ids of the shared products to import"`
}
