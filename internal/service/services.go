package service

import (
	"github.com/third774/dyte-remix/internal/repository"
)

type Services struct {
	Directory  *DirectoryService
	Token      *TokenService
	Meeting    *MeetingService
	Resolution *ResolutionService
}

func NewServices(repos *repository.Repositories, api DyteAPI) *Services {
	directory := NewDirectoryService(api)
	tokens := NewTokenService(api)

	return &Services{
		Directory:  directory,
		Token:      tokens,
		Meeting:    NewMeetingService(directory, repos.Metadata),
		Resolution: NewResolutionService(directory, tokens, repos.Metadata, api.BaseURL()),
	}
}
