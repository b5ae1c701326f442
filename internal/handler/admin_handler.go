package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/timemachine-api/internal/domain/repository"
	"github.com/yourusername/timemachine-api/internal/service"
)

// AdminHandler обрабатывает запросы панели администратора
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler создает новый обработчик панели администратора
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// adminPermissions — статичная карта прав; расширится при появлении новых ролей
var adminPermissions = gin.H{
	"canCreateMilestones": true,
	"canEditMilestones":   true,
	"canDeleteMilestones": true,
	"canCreateQuizzes":    true,
	"canViewAnalytics":    true,
	"canManageUsers":      false,
}

// Verify подтверждает административные права и возвращает профиль со сводкой
// GET /api/admin/verify
func (h *AdminHandler) Verify(c *gin.Context) {
	admin, stats, err := h.adminService.VerifyAdmin(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[AdminHandler] Администратор ID=%d (%s) подтвержден, ip=%s", admin.ID, admin.Email, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin": gin.H{
			"id":         admin.ID,
			"name":       admin.FullName,
			"email":      admin.Email,
			"role":       admin.Role,
			"verifiedAt": time.Now().UTC().Format(time.RFC3339),
		},
		"stats":       stats,
		"permissions": adminPermissions,
	})
}

// Stats возвращает сводку панели администратора
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.adminService.Stats())
}

// Analytics возвращает агрегаты по пользователям, попыткам и значкам
// GET /api/admin/analytics/users
func (h *AdminHandler) Analytics(c *gin.Context) {
	report, err := h.adminService.UserAnalytics()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SecurityLogs возвращает последние записи журнала аудита
// GET /api/admin/security/logs?limit=N
func (h *AdminHandler) SecurityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := h.adminService.SecurityLogs(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// ExportAttempts экспортирует все попытки ответов в CSV или Excel формате
// GET /api/admin/export/attempts?format=csv|xlsx
func (h *AdminHandler) ExportAttempts(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	rows, err := h.adminService.ExportAttempts()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_attempts_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportCSV выгружает попытки в CSV с правильным экранированием спецсимволов
func (h *AdminHandler) exportCSV(c *gin.Context, rows []repository.AttemptExportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"ID", "Email", "Имя", "Веха", "Вопрос", "Ответ", "Верно", "Время (сек)", "Дата"})

	for _, r := range rows {
		correct := "Нет"
		if r.IsCorrect {
			correct = "Да"
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(r.AttemptID), 10),
			sanitizeForExcel(r.UserEmail),
			sanitizeForExcel(r.FullName),
			sanitizeForExcel(r.MilestoneTitle),
			sanitizeForExcel(r.Question),
			sanitizeForExcel(r.SelectedAnswer),
			correct,
			strconv.Itoa(r.TimeTaken),
			r.AttemptedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// exportXLSX выгружает попытки в Excel через StreamWriter
func (h *AdminHandler) exportXLSX(c *gin.Context, rows []repository.AttemptExportRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Попытки"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"ID", "Email", "Имя", "Веха", "Вопрос", "Ответ", "Верно", "Время (сек)", "Дата"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		correct := "Нет"
		if r.IsCorrect {
			correct = "Да"
		}

		row := []interface{}{
			r.AttemptID,
			sanitizeForExcel(r.UserEmail),
			sanitizeForExcel(r.FullName),
			sanitizeForExcel(r.MilestoneTitle),
			sanitizeForExcel(r.Question),
			sanitizeForExcel(r.SelectedAnswer),
			correct,
			r.TimeTaken,
			r.AttemptedAt.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
