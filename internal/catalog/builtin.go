package catalog

import "github.com/ktanaka/coderelay-go/internal/model"

// builtinProblems returns the default problem set. Inputs and expected
// outputs are plain strings; how the grader interprets them is up to the
// execution subsystem.
func builtinProblems() []model.Problem {
	return []model.Problem{
		{
			ID:               "reverse-string",
			Title:            "文字列を逆順にする",
			Description:      "与えられた文字列を逆順にして返す関数を作成してください。",
			Difficulty:       model.DifficultyEasy,
			TimeLimitSeconds: 60,
			MaxPlayers:       5,
			InitialCode: `function reverseString(str) {
  // ここにコードを書いてください
  return str;
}`,
			VisibleTestCases: []model.TestCase{
				{Input: "hello", ExpectedOutput: "olleh", Description: "基本的な文字列の逆順"},
				{Input: "world", ExpectedOutput: "dlrow", Description: "別の文字列の逆順"},
				{Input: "12345", ExpectedOutput: "54321", Description: "数字の文字列"},
			},
			HiddenTestCases: []model.TestCase{
				{Input: "", ExpectedOutput: ""},
				{Input: "a", ExpectedOutput: "a"},
			},
		},
		{
			ID:               "sum-array",
			Title:            "配列の合計を計算",
			Description:      "数値の配列を受け取り、その合計を返す関数を作成してください。",
			Difficulty:       model.DifficultyEasy,
			TimeLimitSeconds: 60,
			MaxPlayers:       5,
			InitialCode: `function sumArray(arr) {
  // ここにコードを書いてください
  return 0;
}`,
			VisibleTestCases: []model.TestCase{
				{Input: "[1, 2, 3, 4, 5]", ExpectedOutput: "15", Description: "基本的な配列の合計"},
				{Input: "[10, 20, 30]", ExpectedOutput: "60", Description: "別の配列の合計"},
			},
			HiddenTestCases: []model.TestCase{
				{Input: "[]", ExpectedOutput: "0"},
				{Input: "[1]", ExpectedOutput: "1"},
			},
		},
		{
			ID:               "find-max",
			Title:            "最大値を求める",
			Description:      "与えられた配列から最大値を返す関数を作成してください。",
			Difficulty:       model.DifficultyEasy,
			TimeLimitSeconds: 60,
			MaxPlayers:       5,
			InitialCode: `function findMax(arr) {
  // ここにコードを書いてください
  return 0;
}`,
			VisibleTestCases: []model.TestCase{
				{Input: "[1, 5, 3, 9, 2]", ExpectedOutput: "9", Description: "正の数の最大値"},
				{Input: "[10, 20, 30]", ExpectedOutput: "30", Description: "昇順の配列"},
			},
			HiddenTestCases: []model.TestCase{
				{Input: "[-5, -10, -3]", ExpectedOutput: "-3"},
				{Input: "[42]", ExpectedOutput: "42"},
			},
		},
	}
}
