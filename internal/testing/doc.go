// Package testing provides shared test doubles for provisioning and
// orchestration tests.
//
// The mocks journal every call into a shared CallLog so tests can assert
// the ordering of steps that span several backends, and they write real
// key and image files where the code under test moves files around:
//   - MockManagement / MockInventory: backend clients with canned results
//   - MockImageBuilder / MockIdentities: image and identity fakes that
//     leave real files behind for the artifact store
//   - MockObserver: records log lines and structured events
//
// Usage:
//
//	log := &testing.CallLog{}
//	mgmt := &testing.MockManagement{Log: log, Name: "WittyOrb", Token: "tok"}
//	inv := &testing.MockInventory{Log: log}
//	// ... run the provisioner, then assert on log.Calls()
package testing
