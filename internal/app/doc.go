// Package app composes the pet store: it wires the catalog, cart and
// checkout services to their stores and manages background jobs such as
// the idle cart purge.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring and lifecycle
//	├── domain/             # Domain models (product, cart, order)
//	├── storage/            # Store interfaces and memory, postgres, redis backends
//	├── services/           # catalog, carts and checkout business logic
//	├── web/                # HTML pages of the store
//	├── httpapi/            # JSON admin API
//	├── runtime/            # Store selection and HTTP server assembly
//	├── system/             # Lifecycle management for background jobs
//	└── metrics/            # Prometheus collectors
//
// # Dependency Direction
//
//	cmd/petstore/
//	      │
//	      ▼
//	internal/app/runtime ──► internal/app/web, internal/app/httpapi
//	      │                        │
//	      ▼                        ▼
//	internal/app (composition) ──► internal/app/services ──► internal/app/storage
package app
