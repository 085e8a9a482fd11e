// api/service/services.go
package service

import (
	"github.com/dev-mohitbeniwal/weathergate/api/pdp/dao"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

type Services struct {
	GateKeeper IGateKeeperService
}

func InitializeServices(
	ledger *dao.CredentialLedger,
	cache *util.ResultCache,
	requiredType string,
	eventBus *util.EventBus,
	clock util.Clock,
) *Services {
	return &Services{
		GateKeeper: NewGateKeeperService(ledger, cache, requiredType, eventBus, clock),
	}
}
