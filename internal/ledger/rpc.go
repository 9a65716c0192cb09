package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// RPCLedger reads ERC-1155 balances from an EVM node over JSON-RPC
type RPCLedger struct {
	client   *http.Client
	url      string
	contract string
	tokenIDs map[domain.TokenKind]int64
	nextID   atomic.Int64
}

// NewRPCLedger creates a reader for contract on the node at url. A nil
// client uses one with DefaultRPCTimeout.
func NewRPCLedger(url, contract string, client *http.Client) (*RPCLedger, error) {
	if !addressPattern.MatchString(contract) {
		return nil, fmt.Errorf("%w: contract address %q", domain.ErrInvalidInput, contract)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultRPCTimeout}
	}
	ids := make(map[domain.TokenKind]int64, len(DefaultTokenIDs))
	for kind, id := range DefaultTokenIDs {
		ids[domain.TokenKind(kind)] = id
	}
	return &RPCLedger{
		client:   client,
		url:      url,
		contract: strings.ToLower(contract),
		tokenIDs: ids,
	}, nil
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type callParams struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// BalanceOf calls balanceOf(participant, tokenID) on the contract
func (l *RPCLedger) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	if !addressPattern.MatchString(participant) {
		return 0, fmt.Errorf("%w: participant %q is not an address", domain.ErrInvalidInput, participant)
	}
	tokenID, ok := l.tokenIDs[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedTokenKind, kind)
	}

	data := balanceOfSelector + padWord(strings.TrimPrefix(strings.ToLower(participant), "0x")) + padWord(fmt.Sprintf("%x", tokenID))
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      l.nextID.Add(1),
		Method:  "eth_call",
		Params:  []interface{}{callParams{To: l.contract, Data: data}, "latest"},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextRPCRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextRPCRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextRPCRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextRPCRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%s: status %d", ErrContextRPCRequest, resp.StatusCode)
	}

	return parseBalance(ctx, raw)
}

func parseBalance(ctx context.Context, raw []byte) (int64, error) {
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("%s: malformed json", ErrContextRPCDecode)
	}
	if rpcErr := gjson.GetBytes(raw, "error"); rpcErr.Exists() {
		logger.FromContext(ctx).Warn(LogMsgRPCError,
			"code", rpcErr.Get("code").Int(),
			"message", rpcErr.Get("message").String())
		return 0, fmt.Errorf("%s: %s", ErrContextRPCRequest, rpcErr.Get("message").String())
	}

	result := gjson.GetBytes(raw, "result")
	if !result.Exists() {
		return 0, fmt.Errorf("%s: missing result", ErrContextRPCDecode)
	}
	hex := strings.TrimPrefix(result.String(), "0x")
	if hex == "" {
		return 0, nil
	}
	value, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return 0, fmt.Errorf("%s: result %q is not hex", ErrContextRPCDecode, result.String())
	}
	if !value.IsInt64() {
		return 0, fmt.Errorf("%s: balance %s overflows int64", ErrContextRPCDecode, value.String())
	}
	return value.Int64(), nil
}

// Credit is not possible without a signing key
func (l *RPCLedger) Credit(ctx context.Context, participant string, kind domain.TokenKind, amount int64) error {
	return fmt.Errorf("%w: %s", domain.ErrSettlementFailed, ErrContextReadOnly)
}

// padWord left-pads a hex string to one 32-byte ABI word
func padWord(hex string) string {
	if len(hex) >= 64 {
		return hex[len(hex)-64:]
	}
	return strings.Repeat("0", 64-len(hex)) + hex
}
