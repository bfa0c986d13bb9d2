package repo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-news-gateway/internal/domain"
)

// classify 把驱动/gorm 错误归类为 domain.StoreError，只用类型和错误码判断
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	fault := domain.FaultUnknown
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fault = domain.FaultNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		fault = domain.FaultConstraint
	case isConnectivity(err):
		fault = domain.FaultConnectivity
	}
	return &domain.StoreError{Fault: fault, Op: op, Err: err}
}

// MySQL: 连接数满 / 拒绝访问 / 库不存在 / 主机拒绝 / 连接中断
var mysqlConnErrors = map[uint16]struct{}{
	1040: {}, 1044: {}, 1045: {}, 1049: {}, 1129: {}, 1130: {},
	2002: {}, 2003: {}, 2006: {}, 2013: {},
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlConnErrors[myErr.Number]
		return ok
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE 08xxx 连接异常，28xxx 认证失败，57P0x 服务端关闭
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "28") ||
			strings.HasPrefix(pgErr.Code, "57P0")
	}
	return false
}
