package usecase

const OrderNumberAlphabet = orderNumberAlphabet
