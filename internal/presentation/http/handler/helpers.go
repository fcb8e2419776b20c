package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/presentation/http/dto/request"
)

// SessionKey extracts the terminal session id from the X-Session-ID header.
// Carts are keyed by it; an empty value means the client never opened one.
func SessionKey(c *gin.Context) string {
	return c.GetHeader("X-Session-ID")
}

// ParamID parses a numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func toModifiers(mods []request.ModifierRequest) entity.ModifierList {
	if len(mods) == 0 {
		return nil
	}
	out := make(entity.ModifierList, 0, len(mods))
	for _, m := range mods {
		out = append(out, entity.Modifier{
			AttributeID: m.AttributeID,
			Label:       m.Label,
			ExtraPrice:  m.ExtraPrice,
		})
	}
	return out
}
