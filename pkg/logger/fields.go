package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldID 实体 ID 字段
	FieldID = "id"

	// FieldKind 实体类型字段（folder / tag / note）
	FieldKind = "kind"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldOutcome 操作结果字段
	FieldOutcome = "outcome"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldPath 请求路径字段
	FieldPath = "path"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldCount 数量字段
	FieldCount = "count"
)
