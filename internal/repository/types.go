package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	LocationID    uint
	DepartmentID  uint
	Search        string
	Barcode       string
	OnlyAvailable bool
	WithRelations bool
}

// DeviceListFilter 查询设备列表的过滤条件
type DeviceListFilter struct {
	Page          int
	PageSize      int
	OwnerID       uint
	LocationID    uint
	DepartmentID  uint
	Search        string
	WithRelations bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
