package handler

import (
	"papochat/internal/app/chat"
	"papochat/internal/app/registry"
	"papochat/internal/app/session"
	"papochat/internal/configs"
)

// AppDeps carries the long-lived objects the handlers read and mutate.
type AppDeps struct {
	Config   *configs.AppConfig
	Sessions *session.Manager
	Users    *registry.Registry
	Messages *chat.Log
	Hub      *chat.Hub
}
