package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/transport/model"
	"schoolku_backend/internals/features/transport/route"
	"schoolku_backend/internals/testutil"
)

func TestTransportFlow(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "TR1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.TransportRoutes(api, db) })
	tok := ten.AdminToken

	status, env := testutil.Do(t, app, "POST", "/api/transport/vehicles", tok, map[string]any{
		"vehicleNo": " b 1234 xy ", "capacity": 30, "driverName": "Pak Joko",
	})
	require.Equal(t, 201, status, env.Error)
	vehicle := testutil.Decode[model.VehicleModel](t, env.Data)
	assert.Equal(t, "B 1234 XY", vehicle.VehicleNo)

	status, env = testutil.Do(t, app, "POST", "/api/transport/vehicles", tok, map[string]any{"vehicleNo": "B 1234 XY"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "vehicleNo", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/transport/routes", tok, map[string]any{
		"title": "Rute Utara", "fare": 150000, "stops": []string{" Pasar ", "Masjid", "", "Pasar"},
	})
	require.Equal(t, 201, status, env.Error)
	r := testutil.Decode[model.TransportRouteModel](t, env.Data)
	assert.Equal(t, model.StopList{"Pasar", "Masjid"}, r.TransportRouteStops)
	assert.True(t, decimal.NewFromInt(150000).Equal(r.TransportRouteFare))

	status, env = testutil.Do(t, app, "GET", "/api/transport/routes/"+r.TransportRouteID.String(), tok, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, model.StopList{"Pasar", "Masjid"}, testutil.Decode[model.TransportRouteModel](t, env.Data).TransportRouteStops)

	status, env = testutil.Do(t, app, "PUT", "/api/transport/routes/"+r.TransportRouteID.String(), tok, map[string]any{
		"stops": []string{"Sekolah"}, "fare": -1,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "fare must not be negative", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/transport/routes/"+r.TransportRouteID.String(), tok, map[string]any{
		"stops": []string{"Sekolah"},
	})
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, model.StopList{"Sekolah"}, testutil.Decode[model.TransportRouteModel](t, env.Data).TransportRouteStops)

	pair := map[string]any{"vehicleId": vehicle.VehicleID, "routeId": r.TransportRouteID}
	status, env = testutil.Do(t, app, "POST", "/api/transport/vehicle-routes", tok, pair)
	require.Equal(t, 201, status, env.Error)
	pairID := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/transport/vehicle-routes", tok, pair)
	assert.Equal(t, 400, status)
	assert.Equal(t, "vehicle is already assigned to this route", env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/transport/vehicles/"+vehicle.VehicleID.String(), tok, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "vehicle is assigned to a route", env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/transport/routes/"+r.TransportRouteID.String(), tok, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "route has vehicles assigned", env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/transport/vehicle-routes?routeId="+r.TransportRouteID.String(), tok, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(1), env.Pagination.Total)

	status, _ = testutil.Do(t, app, "DELETE", "/api/transport/vehicle-routes/"+pairID.String(), tok, nil)
	require.Equal(t, 200, status)
	status, _ = testutil.Do(t, app, "DELETE", "/api/transport/vehicles/"+vehicle.VehicleID.String(), tok, nil)
	assert.Equal(t, 200, status)
}

func TestVehicleRouteRejectsForeignIDs(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "TR2")
	b := testutil.NewTenant(t, db, "TR3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.TransportRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/transport/vehicles", b.AdminToken, map[string]any{"vehicleNo": "D 1"})
	require.Equal(t, 201, status, env.Error)
	foreign := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/transport/vehicle-routes", a.AdminToken, map[string]any{
		"vehicleId": foreign, "routeId": uuid.New(),
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Vehicle not found", env.Error)

	_, tok := a.UserWithRole(t, db, constants.RoleTeacher)
	status, _ = testutil.Do(t, app, "GET", "/api/transport/vehicles", tok, nil)
	assert.Equal(t, 403, status)
}
