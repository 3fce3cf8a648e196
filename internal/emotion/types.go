package emotion

import "errors"

// #region emotion-enum

// Emotion names one of the eight primary affective channels.
type Emotion string

const (
	Joy          Emotion = "joy"
	Sadness      Emotion = "sadness"
	Fear         Emotion = "fear"
	Anger        Emotion = "anger"
	Trust        Emotion = "trust"
	Disgust      Emotion = "disgust"
	Anticipation Emotion = "anticipation"
	Surprise     Emotion = "surprise"
)

// Emotions is the fixed enumeration order. Dominant-emotion ties break in
// this order, and Vector lays intensities out in this order.
var Emotions = []Emotion{
	Joy, Sadness, Fear, Anger, Trust, Disgust, Anticipation, Surprise,
}

// emotionIndex maps a channel name to its slot in the intensity array.
var emotionIndex = func() map[Emotion]int {
	m := make(map[Emotion]int, len(Emotions))
	for i, e := range Emotions {
		m[e] = i
	}
	return m
}()

// #endregion emotion-enum

// #region errors

// ErrUnknownEmotion is returned when an emotion name is not one of the
// eight recognized channels. Rejected before any mutation.
var ErrUnknownEmotion = errors.New("unknown emotion")

// #endregion errors

// #region defaults

const (
	// DefaultIntensity is the starting value for every channel.
	DefaultIntensity = 50.0

	// DefaultDecay is the per-update decay applied to non-target channels.
	DefaultDecay = 0.9
)

// #endregion defaults
