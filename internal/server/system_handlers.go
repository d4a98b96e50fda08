package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/fuzzysystem/finance/internal/session"
)

// Reloader replaces the active session with a freshly loaded one.
type Reloader interface {
	Reload(ctx context.Context, store *session.Store) (*session.Session, error)
}

// SystemHandlers serves process and session status.
type SystemHandlers struct {
	log       zerolog.Logger
	sessions  *session.Store
	reloader  Reloader
	startTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, sessions *session.Store, reloader Reloader) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		sessions:  sessions,
		reloader:  reloader,
		startTime: time.Now(),
	}
}

// SessionStatus describes the active session.
type SessionStatus struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	LoadedAt        time.Time `json:"loaded_at"`
	Rows            int       `json:"rows"`
	Tickers         int       `json:"tickers"`
	HasOptimization bool      `json:"has_optimization"`
}

// SystemStatusResponse is the body of GET /api/system/status.
type SystemStatusResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	CPUPercent    float64        `json:"cpu_percent"`
	MemoryPercent float64        `json:"memory_percent"`
	Goroutines    int            `json:"goroutines"`
	Session       *SessionStatus `json:"session"`
}

func sessionStatus(s *session.Session) *SessionStatus {
	if s == nil {
		return nil
	}
	return &SessionStatus{
		ID:              s.ID,
		Source:          s.Source,
		LoadedAt:        s.LoadedAt,
		Rows:            s.Table.Len(),
		Tickers:         len(s.Table.Schema().Tickers()),
		HasOptimization: s.HasOptimization(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		Session:       sessionStatus(h.sessions.Current()),
	}
	if response.Session == nil {
		response.Status = "no data loaded"
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleReload handles POST /api/session/reload
func (h *SystemHandlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	s, err := h.reloader.Reload(r.Context(), h.sessions)
	if err != nil {
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": sessionStatus(s),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// getSystemStats returns CPU and RAM usage percentages. CPU is sampled over
// 100ms to keep the endpoint fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
