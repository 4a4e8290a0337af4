package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "account_archive", "account_merge")
	ActorName    string                 `json:"actor_name"`    // Tên người thao tác (từ console)
	ActorEmail   string                 `json:"actor_email"`   // Email người thao tác
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "crm_account", "tax_rate")
	IP           string                 `json:"ip"`            // IP address
	UserAgent    string                 `json:"user_agent"`    // User agent
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction ghi một hành động audit
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	// Thông tin người thao tác do console gửi kèm header
	audit.ActorName = c.Get("X-Actor-Name")
	audit.ActorEmail = c.Get("X-Actor-Email")

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"actor_name":    audit.ActorName,
		"actor_email":   audit.ActorEmail,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD ghi các thao tác CRUD
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogLifecycle ghi các chuyển trạng thái vòng đời (archive/unarchive/remove/restore/delete)
func LogLifecycle(transition string, resourceType string, resourceID string, c fiber.Ctx) {
	LogAction("lifecycle_"+transition, c, map[string]interface{}{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
}

// LogMerge ghi một lần gộp bản ghi trùng
func LogMerge(strategy string, targetID string, donorIDs []string, c fiber.Ctx) {
	LogAction("account_merge", c, map[string]interface{}{
		"strategy":  strategy,
		"target_id": targetID,
		"donor_ids": donorIDs,
	})
}
