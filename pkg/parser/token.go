package parser

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenInvalid

	// Trivia.
	TokenWhitespace
	TokenLineBreak
	TokenSingleLineComment
	TokenMultiLineComment

	TokenIdentifier

	// Literals.
	TokenIntegerLiteral
	TokenDecimalLiteral
	TokenHexIntegerLiteral
	TokenBinaryLiteral
	TokenStringLiteral
	TokenVerbatimStringLiteral
	TokenBooleanLiteral
	TokenUndefined
	TokenNoone

	// Template strings.
	TokenSimpleTemplateString
	TokenTemplateStart
	TokenTemplateMiddle
	TokenTemplateEnd

	// Keywords.
	TokenVar
	TokenGlobalVar
	TokenStatic
	TokenIf
	TokenThen
	TokenElse
	TokenDo
	TokenUntil
	TokenWhile
	TokenRepeat
	TokenFor
	TokenWith
	TokenSwitch
	TokenCase
	TokenDefault
	TokenBreak
	TokenContinue
	TokenExit
	TokenReturn
	TokenThrow
	TokenTry
	TokenCatch
	TokenFinally
	TokenFunction
	TokenConstructor
	TokenNew
	TokenDelete
	TokenEnum

	// Directives.
	TokenRegion
	TokenEndRegion
	TokenRegionName
	TokenDefine
	TokenMacro

	// Punctuation.
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenOpenBrace
	TokenCloseBrace
	TokenListAccessor
	TokenMapAccessor
	TokenGridAccessor
	TokenArrayAccessor
	TokenStructAccessor
	TokenSemiColon
	TokenComma
	TokenDot
	TokenColon
	TokenQuestionMark
	TokenBackslash

	// Operators.
	TokenAssign
	TokenEquals
	TokenNotEquals
	TokenLessThan
	TokenGreaterThan
	TokenLessThanEquals
	TokenGreaterThanEquals
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenModulo
	TokenIntegerDivide
	TokenPlusPlus
	TokenMinusMinus
	TokenNot
	TokenBitNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenAnd
	TokenOr
	TokenXor
	TokenNullCoalesce
	TokenLeftShift
	TokenRightShift

	// Compound assignment.
	TokenPlusAssign
	TokenMinusAssign
	TokenMultiplyAssign
	TokenDivideAssign
	TokenModulusAssign
	TokenLeftShiftAssign
	TokenRightShiftAssign
	TokenBitAndAssign
	TokenBitOrAssign
	TokenBitXorAssign
	TokenNullCoalesceAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                   "EOF",
	TokenInvalid:               "Invalid",
	TokenWhitespace:            "Whitespace",
	TokenLineBreak:             "LineBreak",
	TokenSingleLineComment:     "SingleLineComment",
	TokenMultiLineComment:      "MultiLineComment",
	TokenIdentifier:            "Identifier",
	TokenIntegerLiteral:        "IntegerLiteral",
	TokenDecimalLiteral:        "DecimalLiteral",
	TokenHexIntegerLiteral:     "HexIntegerLiteral",
	TokenBinaryLiteral:         "BinaryLiteral",
	TokenStringLiteral:         "StringLiteral",
	TokenVerbatimStringLiteral: "VerbatimStringLiteral",
	TokenBooleanLiteral:        "BooleanLiteral",
	TokenUndefined:             "Undefined",
	TokenNoone:                 "Noone",
	TokenSimpleTemplateString:  "SimpleTemplateString",
	TokenTemplateStart:         "TemplateStart",
	TokenTemplateMiddle:        "TemplateMiddle",
	TokenTemplateEnd:           "TemplateEnd",
	TokenVar:                   "Var",
	TokenGlobalVar:             "GlobalVar",
	TokenStatic:                "Static",
	TokenIf:                    "If",
	TokenThen:                  "Then",
	TokenElse:                  "Else",
	TokenDo:                    "Do",
	TokenUntil:                 "Until",
	TokenWhile:                 "While",
	TokenRepeat:                "Repeat",
	TokenFor:                   "For",
	TokenWith:                  "With",
	TokenSwitch:                "Switch",
	TokenCase:                  "Case",
	TokenDefault:               "Default",
	TokenBreak:                 "Break",
	TokenContinue:              "Continue",
	TokenExit:                  "Exit",
	TokenReturn:                "Return",
	TokenThrow:                 "Throw",
	TokenTry:                   "Try",
	TokenCatch:                 "Catch",
	TokenFinally:               "Finally",
	TokenFunction:              "Function",
	TokenConstructor:           "Constructor",
	TokenNew:                   "New",
	TokenDelete:                "Delete",
	TokenEnum:                  "Enum",
	TokenRegion:                "Region",
	TokenEndRegion:             "EndRegion",
	TokenRegionName:            "RegionName",
	TokenDefine:                "Define",
	TokenMacro:                 "Macro",
	TokenOpenParen:             "OpenParen",
	TokenCloseParen:            "CloseParen",
	TokenOpenBracket:           "OpenBracket",
	TokenCloseBracket:          "CloseBracket",
	TokenOpenBrace:             "OpenBrace",
	TokenCloseBrace:            "CloseBrace",
	TokenListAccessor:          "ListAccessor",
	TokenMapAccessor:           "MapAccessor",
	TokenGridAccessor:          "GridAccessor",
	TokenArrayAccessor:         "ArrayAccessor",
	TokenStructAccessor:        "StructAccessor",
	TokenSemiColon:             "SemiColon",
	TokenComma:                 "Comma",
	TokenDot:                   "Dot",
	TokenColon:                 "Colon",
	TokenQuestionMark:          "QuestionMark",
	TokenBackslash:             "Backslash",
	TokenAssign:                "Assign",
	TokenEquals:                "Equals",
	TokenNotEquals:             "NotEquals",
	TokenLessThan:              "LessThan",
	TokenGreaterThan:           "GreaterThan",
	TokenLessThanEquals:        "LessThanEquals",
	TokenGreaterThanEquals:     "GreaterThanEquals",
	TokenPlus:                  "Plus",
	TokenMinus:                 "Minus",
	TokenMultiply:              "Multiply",
	TokenDivide:                "Divide",
	TokenModulo:                "Modulo",
	TokenIntegerDivide:         "IntegerDivide",
	TokenPlusPlus:              "PlusPlus",
	TokenMinusMinus:            "MinusMinus",
	TokenNot:                   "Not",
	TokenBitNot:                "BitNot",
	TokenBitAnd:                "BitAnd",
	TokenBitOr:                 "BitOr",
	TokenBitXor:                "BitXor",
	TokenAnd:                   "And",
	TokenOr:                    "Or",
	TokenXor:                   "Xor",
	TokenNullCoalesce:          "NullCoalesce",
	TokenLeftShift:             "LeftShift",
	TokenRightShift:            "RightShift",
	TokenPlusAssign:            "PlusAssign",
	TokenMinusAssign:           "MinusAssign",
	TokenMultiplyAssign:        "MultiplyAssign",
	TokenDivideAssign:          "DivideAssign",
	TokenModulusAssign:         "ModulusAssign",
	TokenLeftShiftAssign:       "LeftShiftAssign",
	TokenRightShiftAssign:      "RightShiftAssign",
	TokenBitAndAssign:          "BitAndAssign",
	TokenBitOrAssign:           "BitOrAssign",
	TokenBitXorAssign:          "BitXorAssign",
	TokenNullCoalesceAssign:    "NullCoalesceAssign",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind carry no syntax: whitespace,
// line breaks and comments.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenLineBreak, TokenSingleLineComment, TokenMultiLineComment:
		return true
	}
	return false
}

// IsComment reports whether the kind is a comment.
func (k TokenKind) IsComment() bool {
	return k == TokenSingleLineComment || k == TokenMultiLineComment
}

// Token is a single lexeme. Start and End are byte offsets; Line and Column
// are 1-based and point at Start.
type Token struct {
	Kind   TokenKind
	Text   string
	Start  int
	End    int
	Line   int
	Column int
}

var keywords = map[string]TokenKind{
	"var":         TokenVar,
	"globalvar":   TokenGlobalVar,
	"static":      TokenStatic,
	"if":          TokenIf,
	"then":        TokenThen,
	"else":        TokenElse,
	"do":          TokenDo,
	"until":       TokenUntil,
	"while":       TokenWhile,
	"repeat":      TokenRepeat,
	"for":         TokenFor,
	"with":        TokenWith,
	"switch":      TokenSwitch,
	"case":        TokenCase,
	"default":     TokenDefault,
	"break":       TokenBreak,
	"continue":    TokenContinue,
	"exit":        TokenExit,
	"return":      TokenReturn,
	"throw":       TokenThrow,
	"try":         TokenTry,
	"catch":       TokenCatch,
	"finally":     TokenFinally,
	"function":    TokenFunction,
	"constructor": TokenConstructor,
	"new":         TokenNew,
	"delete":      TokenDelete,
	"enum":        TokenEnum,
	"true":        TokenBooleanLiteral,
	"false":       TokenBooleanLiteral,
	"undefined":   TokenUndefined,
	"noone":       TokenNoone,
	"and":         TokenAnd,
	"or":          TokenOr,
	"xor":         TokenXor,
	"not":         TokenNot,
	"mod":         TokenModulo,
	"div":         TokenIntegerDivide,
	"begin":       TokenOpenBrace,
	"end":         TokenCloseBrace,
}

var directives = map[string]TokenKind{
	"region":    TokenRegion,
	"endregion": TokenEndRegion,
	"define":    TokenDefine,
	"macro":     TokenMacro,
}

// Operators and punctuation, longest first within each leading byte so
// that the lexer can match greedily.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"??=", TokenNullCoalesceAssign},
	{"<<=", TokenLeftShiftAssign},
	{">>=", TokenRightShiftAssign},
	{"[|", TokenListAccessor},
	{"[?", TokenMapAccessor},
	{"[#", TokenGridAccessor},
	{"[@", TokenArrayAccessor},
	{"[$", TokenStructAccessor},
	{"??", TokenNullCoalesce},
	{"==", TokenEquals},
	{"!=", TokenNotEquals},
	{"<>", TokenNotEquals},
	{"<=", TokenLessThanEquals},
	{">=", TokenGreaterThanEquals},
	{"<<", TokenLeftShift},
	{">>", TokenRightShift},
	{"++", TokenPlusPlus},
	{"--", TokenMinusMinus},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"^^", TokenXor},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenMultiplyAssign},
	{"/=", TokenDivideAssign},
	{"%=", TokenModulusAssign},
	{"&=", TokenBitAndAssign},
	{"|=", TokenBitOrAssign},
	{"^=", TokenBitXorAssign},
	{"(", TokenOpenParen},
	{")", TokenCloseParen},
	{"[", TokenOpenBracket},
	{"]", TokenCloseBracket},
	{"{", TokenOpenBrace},
	{"}", TokenCloseBrace},
	{";", TokenSemiColon},
	{",", TokenComma},
	{".", TokenDot},
	{":", TokenColon},
	{"?", TokenQuestionMark},
	{"\\", TokenBackslash},
	{"=", TokenAssign},
	{"<", TokenLessThan},
	{">", TokenGreaterThan},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenMultiply},
	{"/", TokenDivide},
	{"%", TokenModulo},
	{"!", TokenNot},
	{"~", TokenBitNot},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
}
