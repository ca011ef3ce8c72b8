package rbac

import "go-bossboard/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type PermissionResponse = domain.PermissionResponse
