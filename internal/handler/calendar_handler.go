package handler

import (
	"net/http"
	"strconv"

	"diario-server/internal/service"
	"diario-server/pkg/response"

	"github.com/gorilla/mux"
)

type CalendarHandler struct {
	calendar *service.CalendarService
}

func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Month resolves the day-by-day note view for one year/month. With ?q= the
// view is filtered and no placeholder days are materialized.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 {
		response.BadRequest(w, "Invalid year")
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid month")
		return
	}

	view, err := h.calendar.ResolveMonth(year, month, r.URL.Query().Get("q"))
	if err != nil {
		response.InternalError(w, "Failed to resolve calendar")
		return
	}

	response.JSON(w, http.StatusOK, view)
}
