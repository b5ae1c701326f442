package service

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// AuditContext описывает администратора, от имени которого выполняется действие
type AuditContext struct {
	AdminID   uint
	IP        string
	RequestID string
}

// writeAdminLog добавляет запись в журнал аудита. Журнал вторичен по отношению
// к самому действию: ошибка записи логируется и не возвращается вызывающему.
func writeAdminLog(repo repository.AdminLogRepository, audit AuditContext, action, targetType string, targetID *uint, details map[string]interface{}) {
	if repo == nil {
		return
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	if audit.RequestID != "" {
		details["request_id"] = audit.RequestID
	}

	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("[AdminAudit] Не удалось сериализовать детали для action=%s: %v", action, err)
		return
	}

	adminID := audit.AdminID
	entry := &entity.AdminLog{
		AdminID:    &adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    datatypes.JSON(payload),
		IPAddress:  audit.IP,
	}
	if err := repo.Create(entry); err != nil {
		log.Printf("[AdminAudit] Не удалось записать аудит action=%s admin=%d: %v", action, audit.AdminID, err)
	}
}
