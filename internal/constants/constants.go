package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 行项目标对象类型常量（商品 / 维修设备）
const (
	LineTargetProduct = "product"
	LineTargetDevice  = "device"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 员工角色常量
const (
	StaffRoleManager = "manager"
	StaffRoleClerk   = "clerk"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "fm"
)

// 销售税默认税率
const (
	DefaultSalesTaxRate = 0.07
)
