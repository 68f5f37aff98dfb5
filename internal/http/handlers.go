package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"changia/internal/core"
	applog "changia/internal/log"
	"changia/internal/mpesa"
	"changia/internal/report"
)

type groupJSON struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Event       string    `json:"event"`
	HasFirewood bool      `json:"has_firewood"`
	CreatedAt   time.Time `json:"created_at"`
}

type contributionJSON struct {
	ID              int64     `json:"id"`
	Group           string    `json:"group"`
	FirstName       string    `json:"first_name"`
	SecondName      string    `json:"second_name,omitempty"`
	Amount          float64   `json:"amount"`
	TransactionCode string    `json:"transaction_code"`
	Firewood        bool      `json:"firewood"`
	RecordedAt      time.Time `json:"recorded_at"`
}

func toGroupJSON(g core.Group) groupJSON {
	return groupJSON{
		ID:          g.ID,
		Name:        g.Name,
		Event:       string(g.Event),
		HasFirewood: g.HasFirewood,
		CreatedAt:   g.CreatedAt,
	}
}

func toContributionJSON(c core.Contribution) contributionJSON {
	return contributionJSON{
		ID:              c.ID,
		Group:           c.GroupName,
		FirstName:       c.FirstName,
		SecondName:      c.SecondName,
		Amount:          c.Amount,
		TransactionCode: c.TransactionCode,
		Firewood:        c.Firewood,
		RecordedAt:      c.RecordedAt,
	}
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Event       string `json:"event"`
		HasFirewood bool   `json:"has_firewood"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	g := core.Group{
		Name:        sanitizeInput(req.Name),
		Event:       core.ParseEventType(req.Event),
		HasFirewood: req.HasFirewood,
	}
	if err := g.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.groups.CreateGroup(r.Context(), g)
	if err != nil {
		slog.ErrorContext(r.Context(), "Group create error", "error", err, "name", g.Name)
		writeError(w, r, http.StatusInternalServerError, "could not create group")
		return
	}

	g.ID = id
	writeJSON(w, r, http.StatusCreated, toGroupJSON(g))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Group list error", "error", err)
		writeError(w, r, http.StatusInternalServerError, "could not list groups")
		return
	}

	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupJSON(g))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleCreateContribution is the manual-entry path. A blank transaction code
// means cash; a zero amount records a firewood-only member. Firewood sticks
// only when the group collects it.
func (s *Server) handleCreateContribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Group           string `json:"group"`
		FirstName       string `json:"first_name"`
		SecondName      string `json:"second_name"`
		Amount          string `json:"amount"`
		TransactionCode string `json:"transaction_code"`
		Firewood        bool   `json:"firewood"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	group, err := s.groups.GetGroup(r.Context(), strings.TrimSpace(req.Group))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "group not found")
		return
	}

	amount := 0.0
	if strings.TrimSpace(req.Amount) != "" {
		amount, err = core.ParseAmount(req.Amount)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
	}

	code := sanitizeInput(req.TransactionCode)
	if code == "" {
		code = core.CashCode
	}

	c := core.Contribution{
		GroupName:       group.Name,
		FirstName:       sanitizeInput(req.FirstName),
		SecondName:      sanitizeInput(req.SecondName),
		Amount:          amount,
		TransactionCode: code,
		Firewood:        req.Firewood && group.HasFirewood,
		RecordedAt:      time.Now(),
	}
	if err := c.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ref, err := s.creator.CreateContribution(r.Context(), c)
	if err != nil {
		fields := applog.NewFields().
			WithContribution(group.Name, c.FirstName, c.TransactionCode, c.Amount).
			WithOperation(applog.OpCreate).
			WithError(err)
		slog.ErrorContext(r.Context(), "Contribution create error", fields.ToSlice()...)
		writeError(w, r, http.StatusInternalServerError, "could not save contribution")
		return
	}

	s.invalidateGroup(group.Name)
	writeJSON(w, r, http.StatusCreated, map[string]string{"ref": ref})
}

// handleParseSMS extracts record fields from a pasted confirmation message.
// The result pre-fills the entry form; nothing is persisted here.
func (s *Server) handleParseSMS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	n, recognizer, confidence := mpesa.Best(req.Message)
	writeJSON(w, r, http.StatusOK, struct {
		mpesa.Notification
		Recognizer string  `json:"recognizer"`
		Confidence float64 `json:"confidence"`
	}{n, recognizer, confidence})
}

// handleImport runs the batch pipeline over pasted statement text and returns
// the per-row outcome set.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Group string `json:"group"`
		Text  string `json:"text"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	group, err := s.groups.GetGroup(r.Context(), strings.TrimSpace(req.Group))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "group not found")
		return
	}

	res, err := s.importer.ImportText(r.Context(), group, req.Text)
	if err != nil {
		slog.ErrorContext(r.Context(), "Statement import error", "error", err, "group", group.Name)
		writeError(w, r, http.StatusInternalServerError, "import failed")
		return
	}

	s.invalidateGroup(group.Name)
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "group not found")
		return
	}

	records, err := s.lister.ListContributions(r.Context(), group.Name)
	if err != nil {
		slog.ErrorContext(r.Context(), "Contribution list error", "error", err, "group", group.Name)
		writeError(w, r, http.StatusInternalServerError, "could not list contributions")
		return
	}

	out := make([]contributionJSON, 0, len(records))
	for _, c := range records {
		out = append(out, toContributionJSON(c))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleTotal serves the group tally, cached briefly since members poll it
// while contributions stream in.
func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	total, found := s.totalCache.Get(name)
	if !found {
		group, err := s.groups.GetGroup(r.Context(), name)
		if err != nil {
			writeError(w, r, http.StatusNotFound, "group not found")
			return
		}
		records, err := s.lister.ListContributions(r.Context(), group.Name)
		if err != nil {
			slog.ErrorContext(r.Context(), "Total tally error", "error", err, "group", group.Name)
			writeError(w, r, http.StatusInternalServerError, "could not compute total")
			return
		}
		total = core.Total(records)
		s.totalCache.Set(name, total)
	}

	writeJSON(w, r, http.StatusOK, struct {
		Group     string  `json:"group"`
		Total     float64 `json:"total"`
		Formatted string  `json:"formatted"`
	}{name, total, core.FormatGrouped(total)})
}

// handleReport renders the shareable plain-text summary.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	text, found := s.reportCache.Get(name)
	if !found {
		group, err := s.groups.GetGroup(r.Context(), name)
		if err != nil {
			writeError(w, r, http.StatusNotFound, "group not found")
			return
		}
		records, err := s.lister.ListContributions(r.Context(), group.Name)
		if err != nil {
			slog.ErrorContext(r.Context(), "Report render error", "error", err, "group", group.Name)
			writeError(w, r, http.StatusInternalServerError, "could not render report")
			return
		}
		text = report.RenderText(group, records, time.Now())
		s.reportCache.Set(name, text)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleExport pushes the group's full table to the spreadsheet backend.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.tables == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no export backend configured")
		return
	}

	group, err := s.groups.GetGroup(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "group not found")
		return
	}

	records, err := s.lister.ListContributions(r.Context(), group.Name)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err, "group", group.Name)
		writeError(w, r, http.StatusInternalServerError, "could not list contributions")
		return
	}

	rows := report.RenderTable(records)
	sheet := report.FileName(group)
	if err := s.tables.WriteTable(r.Context(), sheet, rows); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err, "group", group.Name, "sheet", sheet)
		writeError(w, r, http.StatusInternalServerError, "export failed")
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Sheet string `json:"sheet"`
		Rows  int    `json:"rows"`
	}{sheet, len(rows)})
}
