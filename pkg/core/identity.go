package core

import (
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
)

// stampIdentity fills absent userId/tenantId from the caller. Values the
// client sent win. Bodies that do not decode are returned unchanged so the
// unit reports the decode failure itself.
func stampIdentity(body []byte, u auth.User) []byte {
	if u.Username == "" {
		return body
	}
	req, err := unit.DecodeRequest(string(body))
	if err != nil {
		return body
	}

	changed := false
	if req.UserID == nil {
		id := u.Username
		req.UserID = &id
		changed = true
	}
	if req.TenantID == nil && u.Tenant != "" {
		t := u.Tenant
		req.TenantID = &t
		changed = true
	}
	if !changed {
		return body
	}

	out, err := unit.EncodeRequest(req)
	if err != nil {
		return body
	}
	return []byte(out)
}
