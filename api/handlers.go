package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/etnz/kitty"
	"github.com/etnz/kitty/renderer"
	"github.com/etnz/kitty/sheet"
)

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *API) handleSettle(w http.ResponseWriter, r *http.Request) {
	report, ok := a.compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := kitty.EncodeReport(w, report); err != nil {
		slog.Error("could not write report", "error", err)
	}
}

func (a *API) handleSettleMarkdown(w http.ResponseWriter, r *http.Request) {
	report, ok := a.compute(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opts := renderer.ReportRenderOptions{
		SkipSplits:    q.Get("splits") == "false",
		SkipSubgroups: q.Get("subgroups") == "false",
		SkipMembers:   q.Get("members") == "false",
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, renderer.RenderReport(report, opts))
}

func (a *API) handleSettleWorkbook(w http.ResponseWriter, r *http.Request) {
	report, ok := a.compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="kitty.xlsx"`)
	if err := sheet.WriteReport(w, report); err != nil {
		slog.Error("could not write workbook", "error", err)
	}
}

// compute decodes the ledger in the request body and computes its report.
// On failure the error response is written and ok is false.
//
// A JSON body (Content-Type application/json) is a canonical ledger document,
// anything else is read as a JSONL ledger. The currency query parameter
// overrides the ledger currency.
func (a *API) compute(w http.ResponseWriter, r *http.Request) (report *kitty.Report, ok bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.config.MaxBody))
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	var ledger *kitty.Ledger
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "application/json" {
		ledger, err = kitty.DecodeMapped(bytes.NewReader(body), kitty.DefaultMapping)
	} else {
		ledger, err = kitty.DecodeLedger(bytes.NewReader(body))
	}
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if cur := strings.TrimSpace(r.URL.Query().Get("currency")); cur != "" {
		ledger.Currency = cur
	}

	report, err = kitty.Compute(ledger)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if a.config.Check {
		if err := report.Check(); err != nil {
			slog.Error("report check failed", "error", err)
			http.Error(w, "report check failed", http.StatusInternalServerError)
			return nil, false
		}
	}
	return report, true
}

// writeError maps decoding and configuration errors to a JSON error response.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var fieldErr *kitty.FieldError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &fieldErr):
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
