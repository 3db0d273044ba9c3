package teardown

// Messages written to the reservation output.
const (
	MsgBeginning              = "Beginning reservation teardown"
	MsgDisconnecting          = "Disconnecting all apps..."
	MsgDisconnectErrorFormat  = "Error disconnecting apps. Error: %s"
	MsgPoweringOffAndDeleting = "Apps are being powered off and deleted..."
	MsgDeleting               = "Apps are being deleted..."
	MsgPoweringOff            = "Apps are powering off..."
	MsgCleaningConnectivity   = "Cleaning-up connectivity"
	MsgArtifactsErrorFormat   = "Error purging reservation artifacts. Error: %s"
	MsgFinished               = "Reservation teardown finished successfully"
)
