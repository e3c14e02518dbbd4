package ifirma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const pathBillingMonth = "/iapi/abonent/miesiacksiegowy.json"

// billingMonthMismatch is the vendor's wording for an issue date outside the
// current accounting month. Matching on it couples us to the vendor's text.
const billingMonthMismatch = "musi być zgodna z miesiącem i rokiem księgowym"

const billingMonthNext = "NAST"

type billingMonthRequest struct {
	Month             string `json:"MiesiacKsiegowy"`
	CarryPreviousYear bool   `json:"PrzeniesDaneZPoprzedniegoRoku"`
}

// AdvanceBillingMonth moves the account's accounting month to the next
// period. It is signed with the user key.
func (c *Client) AdvanceBillingMonth(ctx context.Context) error {
	if !c.HasUserKey() {
		return ErrMissingUserKey
	}

	body, err := json.Marshal(billingMonthRequest{Month: billingMonthNext})
	if err != nil {
		return fmt.Errorf("encode billing month request: %w", err)
	}

	resp, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   pathBillingMonth,
		body:   body,
		accept: mimeJSON,
		signer: c.userSigner,
	})
	if err != nil {
		return err
	}

	_, err = checkStatus(resp.body)
	return err
}

func isBillingMonthMismatch(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == CodeBadRequestParameters && strings.Contains(apiErr.Message, billingMonthMismatch)
}
