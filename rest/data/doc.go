/*
	Adding to the Connector

	The Connector defines how the REST layer reaches stored teapots. The
	route handlers only ever talk to a Connector, so every method returns the
	three-way db.Result outcome rather than driver types.

	To add to the Connector, add the method signature into the interface in
	data/connector.go. Next, add the implementation that interacts with the
	database to DBConnector, keeping as much database specific information as
	possible in the model package. Finally, add the in-memory implementation
	to MemoryConnector so that route tests and the --memory backend keep
	working.
*/
package data
