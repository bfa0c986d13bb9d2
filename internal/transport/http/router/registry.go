package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module 每个资源模块同时拿到公共分组和 admin 分组（已挂 AuthJWT）
type Module interface {
	Mount(public, admin *gin.RouterGroup)
}

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

func MountAll(public, admin *gin.RouterGroup, mods ...Module) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, admin)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
