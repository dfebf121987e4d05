package sweeps

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Signer produces the caller envelope attached to every mutating call.
// The wallet session is the only production implementation.
type Signer interface {
	ActiveAddress() string
	SignPayload(data []byte) ([]byte, error)
}

// Client talks JSON-RPC to the remote sweepstakes process.
type Client struct {
	rpc *gethrpc.Client
	URL string
}

// ConnectResult holds the result of a connection attempt.
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect dials the sweepstakes process endpoint.
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout dials with a custom timeout.
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{rpc: c, URL: url},
		Error:  nil,
	}
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}

// envelope is the signed caller attachment on mutating calls. The process
// verifies the signature against the caller address.
type envelope struct {
	Caller    string `json:"Caller"`
	Signature string `json:"Signature"`
}

// signedEnvelope canonicalizes the call payload, signs it, and returns
// the envelope the process expects.
func signedEnvelope(signer Signer, method string, payload any) (envelope, error) {
	if signer == nil {
		return envelope{}, fmt.Errorf("no signer for %s", method)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return envelope{}, fmt.Errorf("encode %s payload: %w", method, err)
	}
	sig, err := signer.SignPayload(append([]byte(method+":"), body...))
	if err != nil {
		return envelope{}, err
	}
	return envelope{
		Caller:    signer.ActiveAddress(),
		Signature: hex.EncodeToString(sig),
	}, nil
}

// ViewAllSweepstakes fetches the full listing keyed by sweepstakes id.
func (c *Client) ViewAllSweepstakes(ctx context.Context) (map[string]Record, error) {
	var out map[string]Record
	if err := c.rpc.CallContext(ctx, &out, "sweepstakes_viewAll"); err != nil {
		return nil, fmt.Errorf("view all sweepstakes: %w", err)
	}
	if out == nil {
		out = map[string]Record{}
	}
	return out, nil
}

// ViewSweepstakes fetches a single sweepstakes by id. The point lookup
// may transiently disagree with the listing; callers reconcile rather
// than trust either side.
func (c *Client) ViewSweepstakes(ctx context.Context, id string) (Record, error) {
	var out Record
	if err := c.rpc.CallContext(ctx, &out, "sweepstakes_view", id); err != nil {
		return Record{}, fmt.Errorf("view sweepstakes %s: %w", id, err)
	}
	return out, nil
}

// ViewSweepstakesPull fetches one pull by its positional index, passed as
// a string per the process contract.
func (c *Client) ViewSweepstakesPull(ctx context.Context, id, pullIndex string) (PullRecord, error) {
	var out PullRecord
	if err := c.rpc.CallContext(ctx, &out, "sweepstakes_viewPull", id, pullIndex); err != nil {
		return PullRecord{}, fmt.Errorf("view pull %s/%s: %w", id, pullIndex, err)
	}
	return out, nil
}

type registerParams struct {
	Entrants []string `json:"Entrants"`
	Details  string   `json:"Details,omitempty"`
}

// RegisterSweepstakes creates a new sweepstakes. The process signals
// success with a boolean only; it does not return the created id.
func (c *Client) RegisterSweepstakes(ctx context.Context, signer Signer, entrantList []string, details string) (bool, error) {
	params := registerParams{Entrants: entrantList, Details: details}
	env, err := signedEnvelope(signer, "register", params)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.rpc.CallContext(ctx, &ok, "sweepstakes_register", env, params); err != nil {
		return false, fmt.Errorf("register sweepstakes: %w", err)
	}
	return ok, nil
}

type entrantsParams struct {
	ID       string   `json:"Id"`
	Entrants []string `json:"Entrants"`
}

// SetSweepstakesEntrants replaces the entrant list of an unlocked
// sweepstakes. There is no incremental-add primitive; callers push the
// full list.
func (c *Client) SetSweepstakesEntrants(ctx context.Context, signer Signer, entrantList []string, id string) (bool, error) {
	params := entrantsParams{ID: id, Entrants: entrantList}
	env, err := signedEnvelope(signer, "setEntrants", params)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.rpc.CallContext(ctx, &ok, "sweepstakes_setEntrants", env, params); err != nil {
		return false, fmt.Errorf("set entrants for %s: %w", id, err)
	}
	return ok, nil
}

type pullParams struct {
	ID      string `json:"Id"`
	Details string `json:"Details,omitempty"`
}

// PullSweepstakes requests a draw. The winner is resolved off-band; the
// response only acknowledges the request.
func (c *Client) PullSweepstakes(ctx context.Context, signer Signer, id, details string) (bool, error) {
	params := pullParams{ID: id, Details: details}
	env, err := signedEnvelope(signer, "pull", params)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.rpc.CallContext(ctx, &ok, "sweepstakes_pull", env, params); err != nil {
		return false, fmt.Errorf("pull sweepstakes %s: %w", id, err)
	}
	return ok, nil
}

// DeleteSweepstakes removes a sweepstakes and its data.
func (c *Client) DeleteSweepstakes(ctx context.Context, signer Signer, id string) (bool, error) {
	params := pullParams{ID: id}
	env, err := signedEnvelope(signer, "delete", params)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.rpc.CallContext(ctx, &ok, "sweepstakes_delete", env, params); err != nil {
		return false, fmt.Errorf("delete sweepstakes %s: %w", id, err)
	}
	return ok, nil
}

// rejectionPhrases are the known shapes a wallet-denied signature takes
// when it bubbles out of the keystore or the process.
var rejectionPhrases = []string{
	"rejected",
	"denied",
	"cancelled by user",
	"authentication needed",
	"could not decrypt key",
	"locked",
}

// IsWalletRejection reports whether an error looks like the user (or
// their locked wallet) refusing to sign, as opposed to a genuine remote
// failure. Detection is by substring match; the underlying libraries do
// not expose a typed error for this.
func IsWalletRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range rejectionPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
