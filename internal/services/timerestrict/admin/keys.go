package admin

// Catalog keys in the admin namespace.
const (
	keyPermissionDenied  = "admin.permission_denied"
	keyUnknownCommand    = "admin.unknown_command"
	keyUsage             = "admin.usage"
	keyInvalidDay        = "admin.invalid_day"
	keyInvalidFormat     = "admin.invalid_format"
	keyInvalidLimit      = "admin.invalid_limit"
	keyPersistWarning    = "admin.persist_warning"
	keySetDone           = "admin.set.done"
	keyClearDone         = "admin.clear.done"
	keyClearNone         = "admin.clear.none"
	keyStatusHeader      = "admin.status.header"
	keyStatusLine        = "admin.status.line"
	keyStatusOff         = "admin.status.off"
	keyCheckRestricted   = "admin.check.restricted"
	keyCheckOpen         = "admin.check.open"
	keyBypassAdded       = "admin.bypass.added"
	keyBypassExists      = "admin.bypass.exists"
	keyBypassRemoved     = "admin.bypass.removed"
	keyBypassMissing     = "admin.bypass.missing"
	keyBypassInvalidName = "admin.bypass.invalid_name"
	keyBypassEmpty       = "admin.bypass.empty"
	keyBypassList        = "admin.bypass.list"
	keyHistoryDisabled   = "admin.history.disabled"
	keyHistoryEmpty      = "admin.history.empty"
	keyHistoryHeader     = "admin.history.header"
	keyHistoryLine       = "admin.history.line"
)
