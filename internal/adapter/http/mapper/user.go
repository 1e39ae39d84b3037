package mapper

import (
	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/core/domain"
)

func ToUserItem(identity domain.Identity) dto.UserItem {
	return dto.UserItem{ID: identity.UserID, Username: identity.Username, Email: identity.Email}
}
