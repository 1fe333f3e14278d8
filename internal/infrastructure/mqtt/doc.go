// Package mqtt provides MQTT publishing for solar-export.
//
// This package manages:
//   - A single short-lived connection to a Mosquitto broker
//   - Retained publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// Every export run publishes the latest spot reading of each inverter and
// of the plant total as retained JSON, so home-automation dashboards can
// read current production without querying InfluxDB.
//
// # Security Considerations
//
//   - Enable TLS (cfg.Broker.TLS=true) when the broker is not local
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.PublishJSON(client.Topics().Plant(), doc)
package mqtt
