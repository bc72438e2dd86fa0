// Package transport exposes the HTTP handlers of the decode API.
package transport

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/scriptsig"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/wire"
)

// maxBodyBytes bounds request bodies; a transaction at the consensus size
// limit encodes to two megabytes of hex.
const maxBodyBytes = 4 << 20

// DecodeMetrics observes decode API requests.
type DecodeMetrics interface {
	Observe(operation string, err error, started time.Time)
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// DecodeHandler serves transaction and script decoding over HTTP.
type DecodeHandler struct {
	logger  *zap.Logger
	metrics DecodeMetrics
}

// NewDecodeHandler returns a DecodeHandler instance.
func NewDecodeHandler(metrics DecodeMetrics, logger *zap.Logger) *DecodeHandler {
	return &DecodeHandler{
		logger:  logger.Named("decodeHandler"),
		metrics: metrics,
	}
}

// Register mounts the handler's routes on mux.
func (h *DecodeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/tx/decode", h.DecodeTx)
	mux.HandleFunc("/v1/script/classify", h.ClassifyScript)
	mux.HandleFunc("/v1/health", h.Health)
}

type decodeTxRequest struct {
	Hex string `json:"hex"`
}

type scriptSigView struct {
	Hex        string `json:"hex"`
	Asm        string `json:"asm"`
	Kind       string `json:"kind"`
	Signatures int    `json:"signatures"`
	PublicKeys int    `json:"public_keys"`
}

type decodedInput struct {
	PrevTxID  string        `json:"prev_txid"`
	PrevVout  uint32        `json:"prev_vout"`
	Sequence  uint32        `json:"sequence"`
	Coinbase  bool          `json:"coinbase"`
	ScriptSig scriptSigView `json:"script_sig"`
}

type decodedOutput struct {
	Value      int64  `json:"value"`
	ScriptHex  string `json:"script_hex"`
	ScriptType string `json:"script_type"`
}

type decodeTxResponse struct {
	TxID     string          `json:"txid"`
	Version  uint32          `json:"version"`
	LockTime uint32          `json:"locktime"`
	Size     int             `json:"size"`
	Coinbase bool            `json:"coinbase"`
	Inputs   []decodedInput  `json:"inputs"`
	Outputs  []decodedOutput `json:"outputs"`
}

// DecodeTx decodes a raw transaction and classifies its scripts.
func (h *DecodeHandler) DecodeTx(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	var opErr error
	defer func() {
		h.metrics.Observe("decode_tx", opErr, started)
	}()

	if r.Method != http.MethodPost {
		opErr = fmt.Errorf("method %s not allowed", r.Method)
		writeError(w, http.StatusMethodNotAllowed, opErr)
		return
	}

	raw, err := h.readRawHex(w, r)
	if err != nil {
		opErr = err
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, consumed, err := wire.ParseTx(raw)
	if err != nil {
		opErr = fmt.Errorf("parse transaction: %w", err)
		writeError(w, http.StatusBadRequest, opErr)
		return
	}
	if consumed != len(raw) {
		opErr = fmt.Errorf("transaction has %d trailing bytes", len(raw)-consumed)
		writeError(w, http.StatusBadRequest, opErr)
		return
	}

	h.writeJSON(w, http.StatusOK, buildDecodeTxResponse(tx, consumed))
}

func buildDecodeTxResponse(tx *wire.Tx, size int) decodeTxResponse {
	resp := decodeTxResponse{
		TxID:     tx.TxID().String(),
		Version:  tx.Version(),
		LockTime: tx.LockTime(),
		Size:     size,
		Coinbase: tx.IsCoinbase(),
		Inputs:   make([]decodedInput, 0, tx.NumInputs()),
		Outputs:  make([]decodedOutput, 0, tx.NumOutputs()),
	}

	for _, in := range tx.Inputs() {
		sig := scriptsig.ClassifyBytes(in.SignatureScript)
		resp.Inputs = append(resp.Inputs, decodedInput{
			PrevTxID: in.PreviousOutPoint.Hash.String(),
			PrevVout: in.PreviousOutPoint.Index,
			Sequence: in.Sequence,
			Coinbase: in.IsCoinbase(),
			ScriptSig: scriptSigView{
				Hex:        sig.Hex(),
				Asm:        sig.String(),
				Kind:       sig.Kind().String(),
				Signatures: len(sig.Signatures()),
				PublicKeys: len(sig.PublicKeys()),
			},
		})
	}
	for _, out := range tx.Outputs() {
		resp.Outputs = append(resp.Outputs, decodedOutput{
			Value:      int64(out.Value),
			ScriptHex:  hex.EncodeToString(out.PkScript),
			ScriptType: script.Classify(out.PkScript).String(),
		})
	}
	return resp
}

type classifyScriptResponse struct {
	ScriptType string `json:"script_type"`
}

// ClassifyScript classifies a raw output script.
func (h *DecodeHandler) ClassifyScript(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	var opErr error
	defer func() {
		h.metrics.Observe("classify_script", opErr, started)
	}()

	if r.Method != http.MethodPost {
		opErr = fmt.Errorf("method %s not allowed", r.Method)
		writeError(w, http.StatusMethodNotAllowed, opErr)
		return
	}

	raw, err := h.readRawHex(w, r)
	if err != nil {
		opErr = err
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, http.StatusOK, classifyScriptResponse{
		ScriptType: script.Classify(raw).String(),
	})
}

// Health reports server health.
func (h *DecodeHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *DecodeHandler) readRawHex(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var req decodeTxRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if req.Hex == "" {
		return nil, fmt.Errorf("hex field is required")
	}

	raw, err := hex.DecodeString(req.Hex)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return raw, nil
}

func (h *DecodeHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
