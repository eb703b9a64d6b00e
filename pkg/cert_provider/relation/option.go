package relation

import (
	"time"

	"github.com/manualtls/manualtls/pkg/cert_provider/leader"
	"github.com/manualtls/manualtls/pkg/cert_provider/provision"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	"github.com/manualtls/manualtls/pkg/relay"
)

type AdapterOption func(a *Adapter)

func AdapterWithHubAddress(address string) AdapterOption {
	return func(a *Adapter) {
		a.hubAddress = address
	}
}

func AdapterWithUnitName(unitName string) AdapterOption {
	return func(a *Adapter) {
		a.unitName = unitName
	}
}

func AdapterWithCheckInterval(interval time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.checkInterval = interval
	}
}

func AdapterWithCertProvider(certProvider provision.CertProvider) AdapterOption {
	return func(a *Adapter) {
		a.certProvider = certProvider
	}
}

func AdapterWithElector(elector leader.Elector) AdapterOption {
	return func(a *Adapter) {
		a.elector = elector
	}
}

func AdapterWithInboxStorage(store storage.HubInboxStorage) AdapterOption {
	return func(a *Adapter) {
		a.inboxStore = store
	}
}

// AdapterWithHubClient injects a prebuilt hub client. When set, the adapter
// does not dial the hub itself.
func AdapterWithHubClient(client relay.RelayClient) AdapterOption {
	return func(a *Adapter) {
		a.client = client
	}
}
