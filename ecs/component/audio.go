package component

// AudioEmitter marks the entity burn sounds are played from.
type AudioEmitter struct{}

var AudioEmitterComponent = NewComponent[AudioEmitter]()

// Listener marks the entity whose transform is the audio listener.
type Listener struct{}

var ListenerComponent = NewComponent[Listener]()
