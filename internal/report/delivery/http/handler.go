package http

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	assignmentdomain "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	productdomain "github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/report/domain"
	"github.com/adilet-dev/campus-inventory/internal/report/usecase/query"
	studentdomain "github.com/adilet-dev/campus-inventory/internal/student/domain"
	userhttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// ReportHandler serves the dashboard, reports and CSV exports
type ReportHandler struct {
	dashboardHandler     *query.DashboardHandler
	reportsHandler       *query.ReportsHandler
	notificationsHandler *query.NotificationsHandler

	products productdomain.ProductRepository
	students studentdomain.StudentRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	products productdomain.ProductRepository,
	students studentdomain.StudentRepository,
	assignments assignmentdomain.AssignmentRepository,
	reports domain.ReportRepository,
) *ReportHandler {
	return &ReportHandler{
		dashboardHandler:     query.NewDashboardHandler(products, students, assignments, reports),
		reportsHandler:       query.NewReportsHandler(products, students, assignments, reports),
		notificationsHandler: query.NewNotificationsHandler(products, assignments),
		products:             products,
		students:             students,
	}
}

func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", userhttp.AuthMiddleware(h.Dashboard)).Methods("GET")
	router.HandleFunc("/reports", userhttp.AuthMiddleware(h.Reports)).Methods("GET")
	router.HandleFunc("/notifications", userhttp.AuthMiddleware(h.Notifications)).Methods("GET")

	router.HandleFunc("/export/products", userhttp.AuthMiddleware(h.ExportProducts)).Methods("GET")
	router.HandleFunc("/export/students", userhttp.AuthMiddleware(h.ExportStudents)).Methods("GET")
}

// Dashboard handles GET /dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardHandler.Handle(query.DashboardQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build dashboard")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to build dashboard",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{Success: true, Data: dashboard})
}

// Reports handles GET /reports
func (h *ReportHandler) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportsHandler.Handle(query.ReportsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build reports")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to build reports",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{Success: true, Data: reports})
}

// Notifications handles GET /notifications
func (h *ReportHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationsHandler.Handle(query.NotificationsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build notifications")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to build notifications",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{Success: true, Data: notifications})
}

// ExportProducts handles GET /export/products
func (h *ReportHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindAll(-1, 0)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to export products")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to export products",
			Kind:    "Internal",
		})
		return
	}

	beginCSV(w, "products")
	writer := csv.NewWriter(w)
	writer.Write([]string{"ID", "Name", "Category", "Quantity", "Min Stock Level", "Date of Issue", "Assigned", "Description"})
	for _, p := range products {
		issued := ""
		if p.DateOfIssue != nil {
			issued = p.DateOfIssue.Format("2006-01-02")
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStockLevel),
			issued,
			strconv.FormatBool(p.IsAssigned),
			p.Description,
		})
	}
	writer.Flush()
}

// ExportStudents handles GET /export/students
func (h *ReportHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.FindAll(-1, 0)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to export students")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to export students",
			Kind:    "Internal",
		})
		return
	}

	beginCSV(w, "students")
	writer := csv.NewWriter(w)
	writer.Write([]string{"ID", "Full Name", "Roll Number", "Department", "Email", "Phone", "Assigned Product ID", "Assignment Date"})
	for _, s := range students {
		productID := ""
		if s.ProductID != nil {
			productID = strconv.FormatUint(uint64(*s.ProductID), 10)
		}
		assigned := ""
		if s.AssignmentDate != nil {
			assigned = s.AssignmentDate.Format("2006-01-02")
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.FullName,
			s.RollNumber,
			s.Department,
			s.Email,
			s.Phone,
			productID,
			assigned,
		})
	}
	writer.Flush()
}

// beginCSV sets download headers with a date-stamped filename
func beginCSV(w http.ResponseWriter, name string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
