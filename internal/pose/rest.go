package pose

import "gonum.org/v1/gonum/spatial/r3"

// restUpperArmZ is the upper arm Z of a relaxed right arm, arms down at
// the sides. The left arm mirrors it.
const restUpperArmZ = -1.25

// Resting returns the neutral body pose: arms lowered, legs straight, hips
// centered.
func Resting() Pose {
	return Pose{
		RightArm: Arm{Upper: r3.Vec{Z: restUpperArmZ}},
		LeftArm:  Arm{Upper: r3.Vec{Z: -restUpperArmZ}},
	}
}
